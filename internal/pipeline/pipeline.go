// Package pipeline stacks optional texture stages. Each enabled stage reads
// the most recent enabled output, so any stage can be switched off without
// breaking the chain.
package pipeline

import (
	"time"

	"github.com/pkg/errors"

	"texmatte/internal/logging"
	"texmatte/internal/texture"
)

// Producer turns an input texture into a new one.
type Producer func(*texture.Texture) (*texture.Texture, error)

// Stage is one toggleable step.
type Stage struct {
	Name    string
	Enabled bool
	Produce Producer
}

// Candidate is a stage output considered by Select.
type Candidate struct {
	Enabled bool
	Texture *texture.Texture
}

// Select returns the texture of the last enabled candidate, or base if none
// is enabled.
func Select(base *texture.Texture, candidates []Candidate) *texture.Texture {
	out := base
	for _, c := range candidates {
		if c.Enabled && c.Texture != nil {
			out = c.Texture
		}
	}
	return out
}

// Result holds the final texture and every stage output by name.
type Result struct {
	Texture *texture.Texture
	Outputs map[string]*texture.Texture
	Applied []string
}

// Run evaluates stages in order. The base texture is never modified.
func Run(base *texture.Texture, stages []Stage) (Result, error) {
	res := Result{Outputs: make(map[string]*texture.Texture, len(stages))}
	candidates := make([]Candidate, 0, len(stages))

	for _, st := range stages {
		if !st.Enabled || st.Produce == nil {
			candidates = append(candidates, Candidate{})
			continue
		}
		in := Select(base, candidates)

		start := time.Now()
		out, err := st.Produce(in)
		if err != nil {
			return res, errors.Wrapf(err, "pipeline: stage %s", st.Name)
		}
		if out == nil {
			return res, errors.Errorf("pipeline: stage %s produced no texture", st.Name)
		}
		logging.Logger().Debug("pipeline: stage done",
			"stage", st.Name, "in", in.Width, "out", out.Width, "elapsed", time.Since(start))

		res.Outputs[st.Name] = out
		res.Applied = append(res.Applied, st.Name)
		candidates = append(candidates, Candidate{Enabled: true, Texture: out})
	}

	res.Texture = Select(base, candidates)
	return res, nil
}
