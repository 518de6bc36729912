package main

import (
	"context"
	"fmt"

	"github.com/spacemonkeygo/monkit/v3"
	"go.uber.org/zap"

	"staticscan/gen4"
)

var mon = monkit.Package()

// JobResult carries the matching states of one job back to the collector.
type JobResult struct {
	Job    Job
	States []gen4.State
}

type Runner struct {
	*zap.SugaredLogger
	config   *SearchConfig
	jobs     <-chan Job
	reporter *Reporter
	results  chan<- JobResult
	errchan  chan<- error
}

func NewRunner(config *SearchConfig, jobs <-chan Job, reporter *Reporter, results chan<- JobResult,
	errchan chan<- error, n int) *Runner {

	r := &Runner{
		SugaredLogger: Logger().With(zap.Int("id", n)),
		config:        config,
		jobs:          jobs,
		reporter:      reporter,
		results:       results,
		errchan:       errchan,
	}

	r.Debugf("creating runner")

	return r
}

// Run takes jobs until the vendor runs dry or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	r.Debugf("running")

	for {
		select {
		case <-ctx.Done():
			return

		case job, ok := <-r.jobs:
			if !ok {
				return
			}

			if err := r.Op(ctx, job); err != nil {
				select {
				case r.errchan <- err:
					// error sent
				default:
					// error chan was full, discard
				}
				return
			}
		}
	}
}

// Op scans one job. A generator panic (the PID search giving up) comes back
// as an error rather than taking the process down.
func (r *Runner) Op(ctx context.Context, job Job) (err error) {
	defer mon.Task()(&ctx)(&err)

	defer func() {
		if p := recover(); p != nil {
			if perr, ok := p.(error); ok {
				err = fmt.Errorf("seed %08X advances %d+%d: %w", job.Seed, job.Start, job.Count, perr)
			} else {
				err = fmt.Errorf("seed %08X advances %d+%d: %v", job.Seed, job.Start, job.Count, p)
			}
		}
	}()

	var sample *Sample
	if r.reporter != nil {
		sample = r.reporter.GetSample()
	}

	states := r.config.Generator(job.Start, job.Count).Generate(job.Seed)

	if sample != nil {
		r.reporter.CaptureSample(sample, int64(job.Count))
	}

	mon.Counter("matches").Inc(int64(len(states)))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r.results <- JobResult{Job: job, States: states}:
	}

	return nil
}
