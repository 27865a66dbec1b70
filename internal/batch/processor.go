package batch

import (
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/pkg/errors"

	"texmatte/internal/logging"
	"texmatte/internal/pipeline"
	"texmatte/internal/postprocess"
	"texmatte/internal/sample"
	"texmatte/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Index     *texture.Index
	OutputDir string
	// Variant, when set, is resolved through Resolver and replaces each
	// input before the other stages.
	Variant  string
	Resolver texture.Resolver
	Options  pipeline.Options
	Format   string // "webp" or "png"
	MaxSize  int
	Workers  int
}

// Result holds the outcome of processing one image.
type Result struct {
	Name    string
	Output  string
	Width   int
	Height  int
	Applied []string
	Samples sample.Points
	Success bool
	Error   string
}

// Run processes the named images using a worker pool. Results keep the
// order of names.
func Run(cfg Config, names []string) []Result {
	total := len(names)
	results := make([]Result, total)
	var processed atomic.Int64
	log := logging.Logger()

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("batch: progress", "done", p, "total", total, "per_sec", rate)
				}
			}
		}
	}()

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	itemChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range itemChan {
				results[idx] = processItem(cfg, names[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range names {
		itemChan <- i
	}
	close(itemChan)

	wg.Wait()
	close(done)

	return results
}

func processItem(cfg Config, name string) Result {
	res := Result{Name: name}
	fail := func(err error) Result {
		res.Error = err.Error()
		logging.Logger().Warn("batch: item failed", "name", name, "err", err)
		return res
	}

	path, ok := cfg.Index.ResolvePath(name)
	if !ok {
		return fail(errors.Errorf("batch: %s not indexed", name))
	}
	tex, err := texture.LoadTexture(path)
	if err != nil {
		return fail(err)
	}

	opts := cfg.Options
	if cfg.Variant != "" && cfg.Resolver != nil {
		variant, err := cfg.Resolver.Resolve(cfg.Variant)
		if err != nil {
			return fail(errors.Wrap(err, "batch: variant"))
		}
		opts.Variant = variant
	}

	stages, used := pipeline.Standard(opts)
	out, err := pipeline.Run(tex, stages)
	if err != nil {
		return fail(err)
	}
	img := out.Texture
	if cfg.MaxSize > 0 {
		img = postprocess.Downsample(img, cfg.MaxSize)
	}

	ext := ".webp"
	if cfg.Format == "png" {
		ext = ".png"
	}
	outPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(name)+ext)
	if err := writeImage(outPath, img, cfg.Format); err != nil {
		return fail(err)
	}

	res.Output = outPath
	res.Width, res.Height = img.Width, img.Height
	res.Applied = out.Applied
	res.Samples = *used
	res.Success = true
	return res
}

func writeImage(path string, tex *texture.Texture, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "batch: mkdir %s", filepath.Dir(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "batch: create %s", path)
	}
	defer f.Close()

	img := tex.NRGBA()
	if format == "png" {
		err = png.Encode(f, img)
	} else {
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		return errors.Wrapf(err, "batch: encode %s", path)
	}
	return f.Close()
}
