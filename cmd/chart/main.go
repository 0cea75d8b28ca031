// Command chart prints a natal chart report without running the server.
// Places are looked up in the built-in gazetteer only.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	_ "time/tzdata"

	"synastry-service/chart"
	"synastry-service/providers/gazetteer"
	"synastry-service/service"
	"synastry-service/storage"
)

func main() {
	name := flag.String("name", "Chart", "Name shown in the report")
	date := flag.String("date", "", "Birth date, YYYY-MM-DD")
	clock := flag.String("time", "12:00", "Birth time, HH:MM")
	tz := flag.String("tz", "", "IANA time zone of the birth time (default UTC)")
	place := flag.String("place", "", "Birth place from the built-in city list")
	lat := flag.Float64("lat", 0, "Latitude, used when -place is empty")
	lon := flag.Float64("lon", 0, "Longitude, used when -place is empty")
	tropical := flag.Bool("tropical", false, "Use the tropical zodiac")
	houses := flag.String("houses", "placidus", "House system: placidus or equal")
	asJSON := flag.Bool("json", false, "Print JSON instead of the text report")
	flag.Parse()

	if *date == "" {
		fmt.Fprintln(os.Stderr, "usage: chart -date 1985-09-14 -time 17:24 -tz America/Los_Angeles -place \"Los Angeles\"")
		os.Exit(2)
	}

	g := gazetteer.New()
	svc := service.New(storage.NewMemoryStore(), g, g, chart.DefaultOptions, nil)

	sidereal := !*tropical
	in := service.ChartInput{
		Date:        *date,
		Time:        *clock,
		TimeZone:    *tz,
		Place:       *place,
		Sidereal:    &sidereal,
		HouseSystem: *houses,
	}
	if *place == "" {
		in.Latitude, in.Longitude = lat, lon
	}

	res, err := svc.ComputeChart(context.Background(), in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chart: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(res)
		return
	}

	where := fmt.Sprintf("%.4f, %.4f", res.Chart.Latitude, res.Chart.Longitude)
	if res.Location != nil {
		where = res.Location.DisplayName
	}
	subject := chart.Subject{Name: *name, BirthDate: *date, BirthTime: *clock, Place: where}
	fmt.Print(chart.NatalReport(subject, res.Chart, res.Aspects))
}
