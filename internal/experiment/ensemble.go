package experiment

import (
	"context"
	"sort"

	"github.com/san-kum/heroscene/internal/config"
	"github.com/san-kum/heroscene/internal/metrics"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Summary is the spread of one metric across an ensemble.
type Summary struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// RunEnsemble runs one experiment per seed, at most workers at a time. Every
// run gets its own scene; results come back in seed order.
func RunEnsemble(ctx context.Context, cfg *config.Config, seeds []int64, workers int) ([]*Outcome, error) {
	out := make([]*Outcome, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, seed := range seeds {
		g.Go(func() error {
			c := *cfg
			c.Seed = seed
			exp := New(&c)
			if err := exp.Setup(metrics.Default()); err != nil {
				return err
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summarize reduces each metric over the outcomes, sorted by name.
func Summarize(outcomes []*Outcome) []Summary {
	values := make(map[string][]float64)
	for _, o := range outcomes {
		if o == nil {
			continue
		}
		for name, v := range o.Metrics {
			values[name] = append(values[name], v)
		}
	}

	out := make([]Summary, 0, len(values))
	for name, vs := range values {
		mean, std := stat.MeanStdDev(vs, nil)
		if len(vs) < 2 {
			std = 0
		}
		s := Summary{Name: name, Mean: mean, StdDev: std, Min: vs[0], Max: vs[0]}
		for _, v := range vs {
			s.Min = min(s.Min, v)
			s.Max = max(s.Max, v)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
