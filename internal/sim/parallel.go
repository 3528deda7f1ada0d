package sim

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/integrators"
	"golang.org/x/sync/errgroup"
)

// Job is one independent headless run.
type Job struct {
	Name       string
	Config     *config.Config
	Integrator string
}

// Outcome is the final state of a Job.
type Outcome struct {
	Job     Job
	Frame   Frame
	Metrics map[string]float64
}

// Batch runs independent simulations concurrently. Each goroutine owns its
// own Simulation; nothing is shared between runs.
type Batch struct {
	duration   float64
	workers    int
	newMetrics func() []dynamo.Metric
	opts       []Option
}

func NewBatch(duration float64, newMetrics func() []dynamo.Metric, opts ...Option) *Batch {
	return &Batch{
		duration:   duration,
		workers:    runtime.GOMAXPROCS(0),
		newMetrics: newMetrics,
		opts:       opts,
	}
}

// Run returns outcomes in job order, or the first error.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	outcomes := make([]Outcome, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, job := range jobs {
		g.Go(func() error {
			opts := append([]Option(nil), b.opts...)
			if job.Integrator != "" {
				st, err := integrators.ByName(job.Integrator)
				if err != nil {
					return fmt.Errorf("%s: %w", job.Name, err)
				}
				opts = append(opts, WithStepper(st))
			}
			if b.newMetrics != nil {
				opts = append(opts, WithMetrics(b.newMetrics()...))
			}

			s, err := New(job.Config, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			if err := s.RunFor(ctx, b.duration, nil); err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}

			outcomes[i] = Outcome{Job: job, Frame: s.Frame(), Metrics: s.Metrics()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
