package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"synastry-service/datasource"
	"synastry-service/logging"
	"synastry-service/models"
	"synastry-service/providers/gazetteer"
)

// slowGeocoder adds a fixed lookup latency to the offline gazetteer so the
// limiter's queueing is visible.
type slowGeocoder struct {
	next    datasource.Geocoder
	latency time.Duration
	calls   atomic.Int64
}

func (s *slowGeocoder) Geocode(ctx context.Context, place string) (models.Location, error) {
	s.calls.Add(1)
	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
		return models.Location{}, ctx.Err()
	}
	return s.next.Geocode(ctx, place)
}

func (s *slowGeocoder) Name() string {
	return s.next.Name() + " (slow)"
}

type lookup struct {
	place  string
	waited time.Duration
	done   time.Duration
	err    error
}

func main() {
	rps := flag.Float64("rps", 1.0, "Geocoding requests per second")
	burst := flag.Int("burst", 3, "Limiter burst size")
	places := flag.String("places", "Paris,Tokyo,Lima,Cairo,Sydney,Toronto,Mumbai,Berlin,London,Nairobi", "Comma separated places to geocode")
	rounds := flag.Int("rounds", 1, "How many times the place list is geocoded")
	workers := flag.Int("workers", 4, "Concurrent callers")
	latency := flag.Duration("latency", 150*time.Millisecond, "Simulated provider latency")
	flag.Parse()

	logger, err := logging.New("info", true)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	var queue []string
	for i := 0; i < *rounds; i++ {
		for _, p := range strings.Split(*places, ",") {
			if p = strings.TrimSpace(p); p != "" {
				queue = append(queue, p)
			}
		}
	}
	if len(queue) == 0 {
		log.Fatal("No places to geocode")
	}

	slow := &slowGeocoder{next: gazetteer.New(), latency: *latency}
	limited := datasource.NewRateLimitedGeocoder(slow, *rps, *burst)

	fmt.Printf("Geocoder: %s\n", limited.Name())
	fmt.Printf("Limit %.2f req/s, burst %d, %d lookups, %d workers\n\n", *rps, *burst, len(queue), *workers)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	jobs := make(chan string)
	var (
		mu      sync.Mutex
		results []lookup
	)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for _, p := range queue {
			select {
			case jobs <- p:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < *workers; i++ {
		g.Go(func() error {
			for place := range jobs {
				before := time.Now()
				_, err := limited.Geocode(gctx, place)
				r := lookup{
					place:  place,
					waited: time.Since(before) - *latency,
					done:   time.Since(start),
					err:    err,
				}
				if err != nil {
					logger.Warn("lookup failed", zap.String("place", place), zap.Error(err))
				}
				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("run aborted", zap.Error(err))
	}

	elapsed := time.Since(start)
	perSecond := map[int]int{}
	var failed int
	var maxWait time.Duration
	for _, r := range results {
		perSecond[int(r.done/time.Second)]++
		if r.err != nil {
			failed++
		}
		if r.waited > maxWait {
			maxWait = r.waited
		}
	}

	fmt.Println("Completions per second:")
	for sec := 0; sec <= int(elapsed/time.Second); sec++ {
		fmt.Printf("  %3ds %s\n", sec, strings.Repeat("#", perSecond[sec]))
	}

	observed := float64(len(results)) / elapsed.Seconds()
	fmt.Printf("\nElapsed %.2fs, %d provider calls, %d failed\n", elapsed.Seconds(), slow.calls.Load(), failed)
	fmt.Printf("Observed %.2f req/s, longest limiter wait %v\n", observed, maxWait.Round(time.Millisecond))

	floor := float64(len(queue)-*burst) / *rps
	if floor < 0 {
		floor = 0
	}
	fmt.Printf("Lower bound from the limit: %.2fs\n", floor)
	if elapsed.Seconds() < floor*0.9 {
		fmt.Println("Finished faster than the limit allows; the limiter is not throttling.")
	} else {
		fmt.Println("Throughput stays within the configured limit.")
	}
}
