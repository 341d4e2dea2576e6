package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/df07/go-light-transport/pkg/scene"
	"github.com/google/uuid"
)

// options holds the parsed command line
type options struct {
	preset     string
	samples    int
	workers    int
	batch      int
	seed       int64
	maxBounces int
	noNEE      bool
	verbose    bool
	list       bool
}

var errInvalidFlag = errors.New("invalid flag value")

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("estimate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.preset, "preset", "lambert-sphere", "Preset scene to estimate (see -list)")
	fs.IntVar(&opts.samples, "samples", 4096, "Number of paths through the film center")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "Number of parallel workers")
	fs.IntVar(&opts.batch, "batch", 256, "Paths per worker task")
	fs.Int64Var(&opts.seed, "seed", 1, "Random seed; equal seeds give equal estimates")
	fs.IntVar(&opts.maxBounces, "max-bounces", 0, "Override the preset's bounce limit (0 keeps it)")
	fs.BoolVar(&opts.noNEE, "no-nee", false, "Disable next-event estimation")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&opts.list, "list", false, "List available presets and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Light transport estimator")
		fmt.Fprintln(stderr, "Usage: estimate [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.samples < 0 {
		return opts, fmt.Errorf("%w: samples %d", errInvalidFlag, opts.samples)
	}
	if opts.maxBounces < 0 {
		return opts, fmt.Errorf("%w: max-bounces %d", errInvalidFlag, opts.maxBounces)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, stdout, stderr io.Writer) error {
	if opts.list {
		for _, info := range scene.ListPresets() {
			fmt.Fprintf(stdout, "  %-16s %s\n", info.Name, info.Description)
		}
		return nil
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())
	core.SetLogger(logger)
	defer core.SetLogger(nil)

	preset, err := scene.NewPreset(opts.preset)
	if err != nil {
		return err
	}

	config := preset.Config
	if opts.maxBounces > 0 {
		config.MaxBounces = opts.maxBounces
		if config.MinBounces > config.MaxBounces {
			config.MinBounces = config.MaxBounces
		}
	}
	if opts.noNEE {
		config.EnableLightSampling = false
		config.EnableVolumeLightSampling = false
	}
	if err := config.Validate(); err != nil {
		return err
	}

	tracerOpts := []integrator.Option{integrator.WithLightWeighting(lights.PowerWeighting)}
	if preset.Medium != nil {
		tracerOpts = append(tracerOpts, integrator.WithCameraMedium(preset.Medium))
	}

	camera := renderer.NewCamera(preset.Camera)
	pool := renderer.NewWorkerPool(preset.Scene, camera, config, opts.workers, 0, tracerOpts...)
	pool.Start()
	defer pool.Stop()

	logger.Info("estimating", "preset", preset.Name, "samples", opts.samples,
		"workers", pool.GetNumWorkers(), "seed", opts.seed, "maxBounces", config.MaxBounces)

	start := time.Now()
	result := pool.Estimate(0.5, 0.5, opts.samples, opts.batch, opts.seed)
	elapsed := time.Since(start)

	logger.Info("estimate complete", "elapsed", elapsed)

	fmt.Fprintf(stdout, "Preset:    %s\n", preset.Name)
	fmt.Fprintf(stdout, "Samples:   %d\n", opts.samples)
	fmt.Fprintf(stdout, "Radiance:  %.6f %.6f %.6f\n", result.X, result.Y, result.Z)
	if preset.HasReference {
		relErr := 0.0
		if preset.Reference != 0 {
			relErr = (result.Avg() - preset.Reference) / preset.Reference
		}
		fmt.Fprintf(stdout, "Reference: %.6f (relative error %+.3f%%)\n", preset.Reference, 100*relErr)
	}
	return nil
}
