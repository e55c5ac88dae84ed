// Command ecs-stress fills a world with generated components and systems,
// churns entities for a fixed duration and prints a report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/maskecs/internal/config"
	"github.com/plus3/maskecs/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ecs-stress:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML config file. Defaults are used when empty.")
	duration := flag.Duration("duration", 0, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 0, "The initial number of entities to create.")
	componentCount := flag.Int("components", 0, "The number of generated components (1-64).")
	systemCount := flag.Int("systems", 0, "The number of generated systems.")
	churn := flag.Float64("churn", -1, "Fraction of entities replaced every tick.")
	profileMode := flag.String("profile", "", "Write a cpu, mem or trace profile to the current directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	sc := cfg.Stress
	if *duration > 0 {
		sc.Duration = *duration
	}
	if *entityCount > 0 {
		sc.Entities = *entityCount
	}
	if *componentCount > 0 {
		sc.Components = min(*componentCount, 64)
	}
	if *systemCount > 0 {
		sc.Systems = *systemCount
	}
	if *churn >= 0 {
		sc.Churn = min(*churn, 1)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "trace":
		defer profile.Start(profile.TraceProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}

	log.Info("populating world",
		zap.Int("entities", sc.Entities),
		zap.Int("components", sc.Components),
		zap.Int("systems", sc.Systems),
	)
	sw := newStressWorld(sc, log)

	report := &Report{
		Duration:       sc.Duration,
		Entities:       sc.Entities,
		Components:     sc.Components,
		Systems:        sc.Systems,
		Churn:          sc.Churn,
		Seed:           sc.Seed,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", sc.Duration))
	ctx, cancel := context.WithTimeout(context.Background(), sc.Duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			sw.world.AdvanceTick()
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Collect(sw)
	log.Info("simulation finished",
		zap.Int64("updates", report.TotalUpdates),
		zap.Int64("spawned", report.Spawned),
		zap.Int64("destroyed", report.Destroyed),
	)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}
