package batch

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texmatte/internal/matte"
	"texmatte/internal/pipeline"
	"texmatte/internal/texture"
)

// writeSubject writes a 16x16 white PNG with a blue 4x4 center.
func writeSubject(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if x >= 6 && x < 10 && y >= 6 && y < 10 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func readPNG(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return texture.FromImage(img).NRGBA()
}

func matteOptions() pipeline.Options {
	return pipeline.Options{
		Matte: &pipeline.MatteOptions{Params: matte.Params{ColorSensitivity: 30, Continuous: true}},
		Wrap:  &pipeline.WrapOptions{Size: 0},
	}
}

func TestRunPNG(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeSubject(t, filepath.Join(in, "a.png"))
	writeSubject(t, filepath.Join(in, "sub", "b.png"))

	idx := texture.BuildIndex(in)
	results := Run(Config{
		Index:     idx,
		OutputDir: out,
		Options:   matteOptions(),
		Format:    "png",
		Workers:   2,
	}, idx.Stems())

	require.Len(t, results, 2)
	for _, r := range results {
		require.True(t, r.Success, r.Error)
		assert.Equal(t, 16, r.Width)
		assert.Equal(t, []string{pipeline.StageMatte, pipeline.StageWrap}, r.Applied)
		assert.Len(t, r.Samples, 3)
	}
	assert.Equal(t, filepath.Join(out, "sub", "b.png"), results[1].Output)

	img := readPNG(t, results[0].Output)
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(7, 7))
}

func TestRunWebPAndDownsample(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeSubject(t, filepath.Join(in, "a.png"))

	idx := texture.BuildIndex(in)
	results := Run(Config{Index: idx, OutputDir: out, MaxSize: 8, Workers: 1}, idx.Stems())

	require.Len(t, results, 1)
	require.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, 8, results[0].Width)
	assert.Empty(t, results[0].Applied)

	info, err := os.Stat(filepath.Join(out, "a.webp"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	tex, err := texture.LoadTexture(filepath.Join(out, "a.webp"))
	require.NoError(t, err)
	assert.Equal(t, 8, tex.Width)
}

type stubResolver struct {
	tex   *texture.Texture
	calls int
}

func (s *stubResolver) Resolve(string) (*texture.Texture, error) {
	s.calls++
	return s.tex, nil
}

func TestRunVariant(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeSubject(t, filepath.Join(in, "a.png"))

	res := &stubResolver{tex: texture.NewFilled(4, 4, texture.Color{R: 1, A: 1})}
	idx := texture.BuildIndex(in)
	results := Run(Config{
		Index:     idx,
		OutputDir: out,
		Variant:   "variant.png",
		Resolver:  res,
		Format:    "png",
	}, idx.Stems())

	require.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, 4, results[0].Width)
	assert.Equal(t, []string{pipeline.StageVariant}, results[0].Applied)
	assert.Equal(t, 1, res.calls)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, readPNG(t, results[0].Output).NRGBAAt(0, 0))
}

func TestRunReportsFailures(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("nope"), 0644))

	idx := texture.BuildIndex(in)
	results := Run(Config{Index: idx, OutputDir: t.TempDir(), Format: "png"}, []string{"broken", "missing"})

	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "texture: decode")
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Error, "not indexed")
}

func TestRunWrapFailure(t *testing.T) {
	in := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	f, err := os.Create(filepath.Join(in, "wide.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	idx := texture.BuildIndex(in)
	results := Run(Config{
		Index:     idx,
		OutputDir: t.TempDir(),
		Options:   pipeline.Options{Wrap: &pipeline.WrapOptions{Size: 50}},
	}, idx.Stems())

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "not square")
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	results := []Result{
		{Name: "a", Output: filepath.Join(dir, "a.webp"), Width: 8, Height: 8, Applied: []string{"matte"}, Success: true},
		{Name: "b", Error: "boom"},
	}
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "a.webp", entries[0].Image)
	assert.Equal(t, []string{"matte"}, entries[0].Stages)
	assert.Equal(t, "boom", entries[1].Error)
	assert.Empty(t, entries[1].Image)
}

func TestWriteManifestCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, WriteManifest(path, []Result{{Name: "a", Error: "boom"}}))
	assert.FileExists(t, path)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	err := WriteManifest(filepath.Join(blocker, "manifest.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch: mkdir")
}
