package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"synastry-service/cache"
	"synastry-service/datasource"
	"synastry-service/providers/gazetteer"
	"synastry-service/providers/nominatim"
)

func main() {
	offline := flag.Bool("offline", false, "Use only the built-in gazetteer")
	ttl := flag.Duration("search-ttl", 10*time.Second, "Search cache lifetime")
	flag.Parse()

	fmt.Println("=== Running Geocode Cache Test ===")
	fmt.Println("This will demonstrate how caching works with repeated lookups")
	fmt.Println()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file:", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	providers := []datasource.Provider{}
	if !*offline {
		osm := nominatim.NewNominatimSource(os.Getenv("NOMINATIM_URL"), os.Getenv("NOMINATIM_USER_AGENT"), 10*time.Second)
		// Nominatim's usage policy allows one request per second
		providers = append(providers, datasource.NewRateLimitedProvider(osm, 1, 1))
		fmt.Println("Added Nominatim source (1 request/second)")
	}
	providers = append(providers, gazetteer.New())
	fmt.Println("Added gazetteer fallback")

	geocoders := make([]datasource.Geocoder, 0, len(providers))
	searchers := make([]datasource.Searcher, 0, len(providers))
	for _, p := range providers {
		geocoders = append(geocoders, p)
		searchers = append(searchers, p)
	}

	geocodeCache := cache.NewGeocodeCache()
	geocoder := cache.NewCachedGeocoder(datasource.NewFallbackGeocoder(logger, geocoders...), geocodeCache, logger)
	searcher := cache.NewCachedSearcher(datasource.NewFallbackSearcher(logger, searchers...), *ttl, logger)

	ctx := context.Background()
	places := []string{"London, UK", "Tokyo", "São Paulo, Brazil"}

	fmt.Println("\n*** First pass - should be cache misses ***")
	geocodeAll(ctx, geocoder, places)

	fmt.Println("\n*** Second pass, different spelling - should be cache hits ***")
	geocodeAll(ctx, geocoder, []string{"london, uk", "  TOKYO ", "Sao Paulo, Brazil"})

	fmt.Println("\n*** Search twice, then after expiry ***")
	search(ctx, searcher, "san")
	search(ctx, searcher, "SAN")
	fmt.Printf("Waiting for search cache to expire (%s)...\n", *ttl)
	time.Sleep(*ttl + time.Second)
	search(ctx, searcher, "san")

	hits, misses := geocodeCache.Stats()
	fmt.Printf("\nGeocode cache: %d entries, %d hits, %d misses\n", geocodeCache.Len(), hits, misses)
	hits, misses = searcher.CacheStats()
	fmt.Printf("Search cache: %d hits, %d misses\n", hits, misses)

	fmt.Println("\n=== Cache Test Complete ===")
}

func geocodeAll(ctx context.Context, g datasource.Geocoder, places []string) {
	for _, place := range places {
		start := time.Now()
		loc, err := g.Geocode(ctx, place)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Printf("%-20q -> %s (%.4f, %.4f) via %s in %s\n",
			place, loc.DisplayName, loc.Latitude, loc.Longitude, loc.Provider, time.Since(start).Round(time.Millisecond))
	}
}

func search(ctx context.Context, s datasource.Searcher, query string) {
	locs, err := s.Search(ctx, query, 5)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("%q: %d suggestions\n", query, len(locs))
}
