package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"texmatte/internal/batch"
	"texmatte/internal/config"
	"texmatte/internal/logging"
	"texmatte/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .toml, .yaml)")
	testN := flag.Int("test", 0, "Process only first N images for testing")
	only := flag.String("only", "", "Process only the image with this name (e.g. walls/brick)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	inputDir := flag.String("input", "", "Input directory")
	outputDir := flag.String("output", "", "Output directory (default: <input>/out)")
	variant := flag.String("variant", "", "Image that replaces every input before matting")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Variant:   *variant,
		Format:    *format,
		Workers:   *workers,
	})

	if cfg.InputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no input directory. Use -input flag or config file.")
		os.Exit(1)
	}

	opts, err := cfg.Pipeline(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Build image index
	index := texture.BuildIndex(cfg.InputDir, cfg.OutputDir)
	names := index.Stems()
	if *only != "" {
		names = nil
		if _, ok := index.ResolvePath(*only); ok {
			names = []string{*only}
		}
	}

	// Limit for testing
	if *testN > 0 && *testN < len(names) {
		names = names[:*testN]
	}

	if len(names) == 0 {
		fmt.Println("No images to process.")
		os.Exit(0)
	}

	stages := ""
	for _, s := range []struct {
		name string
		on   bool
	}{
		{"variant", cfg.Variant != ""},
		{"matte", cfg.Matte.Enabled},
		{"extend", cfg.Extend.Enabled},
		{"wrap", cfg.Wrap.Enabled},
	} {
		if s.on {
			stages += " " + s.name
		}
	}
	if stages == "" {
		stages = " (none)"
	}

	fmt.Printf("Images: %d, Workers: %d, Format: %s\n", len(names), cfg.Workers, cfg.Format)
	fmt.Printf("Stages:%s\n", stages)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		Index:     index,
		OutputDir: cfg.OutputDir,
		Variant:   cfg.Variant,
		Resolver:  texture.NewCache(),
		Options:   opts,
		Format:    cfg.Format,
		MaxSize:   cfg.MaxSize,
		Workers:   cfg.Workers,
	}, names)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success := 0
	var failed []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed = append(failed, r)
		}
	}

	fmt.Printf("Processed: %d/%d\n", success, len(names))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(20, len(failed))
		for _, e := range failed[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}
