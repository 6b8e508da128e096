// Command assign runs one assignment batch from a record file.
//
//	assign -in records.xlsx -out assignments.xlsx
//	assign -distance "N68°47′48″,E36°07′42″" "N73°29′30″,E37°28′17″"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"kill-chain-service/internal/adapters/memory"
	"kill-chain-service/internal/adapters/records"
	"kill-chain-service/internal/config"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/geo"
	"kill-chain-service/internal/platform/obs"
	"kill-chain-service/internal/services"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	obs.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("assign", flag.ContinueOnError)
	in := fs.String("in", "", "record file (.yaml, .yml or .xlsx)")
	out := fs.String("out", "", "assignment file (.yaml, .yml or .xlsx); YAML on stdout when empty")
	distance := fs.Bool("distance", false, "print the distance between two \"lat,lon\" DMS arguments and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *distance {
		return printDistance(stdout, fs.Args())
	}

	if *in == "" {
		return errors.New("assign: -in is required")
	}

	recs, err := records.LoadFile(*in)
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	for _, w := range recs.Warnings {
		slog.WarnContext(ctx, "record skipped", "path", *in, "err", w)
	}

	store := memory.NewStore(recs.Missions, recs.Recon, recs.Strike)
	res, err := services.RunAssignments(ctx, nil, store, store, cfg.AssignOptions(nil))
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}

	rows := store.Assignments()
	computed, reused := res.Distances.Stats()
	slog.InfoContext(ctx, "assignment run complete",
		"missions", len(rows),
		"distances_computed", computed,
		"distances_reused", reused,
	)

	if *out == "" {
		return records.WriteAssignments(stdout, records.FormatYAML, rows)
	}
	return records.WriteAssignmentsFile(*out, rows)
}

func printDistance(w io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("assign -distance: want two \"lat,lon\" arguments")
	}

	p1, err := parseLatLon(args[0])
	if err != nil {
		return fmt.Errorf("assign -distance: %w", err)
	}
	p2, err := parseLatLon(args[1])
	if err != nil {
		return fmt.Errorf("assign -distance: %w", err)
	}

	d := geo.Round2(geo.Haversine(p1, p2))
	_, err = fmt.Fprintf(w, "The distance between the two coordinates is %v nautical miles.\n", d)
	return err
}

func parseLatLon(s string) (domain.GeoPoint, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("%q: want \"lat,lon\"", s)
	}
	return geo.ParsePoint(lat, lon)
}
