package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type ReporterConfig struct {
	Interval      time.Duration
	ProgressLog   bool
	Dir           string // where the progress log goes
	RunId         string
	TotalAdvances uint64
}

type Sample struct {
	Start    time.Time
	Finish   time.Time
	Advances int64
}

// Reporter prints scan throughput at a fixed interval and keeps a histogram
// of how long jobs take.
type Reporter struct {
	*zap.SugaredLogger
	config     *ReporterConfig
	stop       func()
	samples    chan *Sample
	samplePool sync.Pool
	printer    *message.Printer
	jobTimes   *Histogram
	done       atomic.Uint64 // advances scanned so far
	started    time.Time
	proglog    *os.File
}

func NewReporter(config *ReporterConfig) (r *Reporter, err error) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	r = &Reporter{
		SugaredLogger: Logger().With(zap.String("component", "reporter")),
		config:        config,
		stop: func() {
			cancel()
			wg.Wait()
		},
		samples: make(chan *Sample, 1000),
		samplePool: sync.Pool{
			New: func() interface{} {
				return &Sample{}
			},
		},
		printer:  message.NewPrinter(language.English),
		jobTimes: NewHistogram(),
		started:  time.Now(),
	}

	if err = r.openFiles(); err != nil {
		return nil, err
	}

	wg.Add(1)
	go func() {
		r.Run(ctx)
		wg.Done()
	}()

	return
}

func (r *Reporter) openFiles() (err error) {
	if !r.config.ProgressLog {
		return nil
	}

	if err = os.MkdirAll(r.config.Dir, 0755); err != nil {
		return fmt.Errorf("failed creating progress log dir: %s", err)
	}

	path := filepath.Join(r.config.Dir, fmt.Sprintf("progress.%s.csv", r.config.RunId))
	r.proglog, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)

	if err != nil {
		return fmt.Errorf("failed creating progress log: %s", err)
	}

	if _, err = fmt.Fprintf(r.proglog, "# %s, %s, %s\n", "Time(sec)", "Rate(advances/sec)", "Done(advances)"); err != nil {
		_ = r.proglog.Close()
		r.proglog = nil
		return fmt.Errorf("failed writing to progress log: %s", err)
	}

	return nil
}

// Stop ends the reporting loop and logs a summary.
func (r *Reporter) Stop() {
	r.stop()

	elapsed := time.Since(r.started)
	done := r.done.Load()
	r.Info(r.printer.Sprintf("scanned %d of %d advances in %s (%d/sec)",
		done, r.config.TotalAdvances, elapsed.Round(time.Millisecond), int64(float64(done)/elapsed.Seconds())))

	fmt.Println("job times")
	fmt.Println(r.jobTimes.Headers())
	fmt.Println(r.jobTimes.String())
}

func (r *Reporter) Done() uint64 {
	return r.done.Load()
}

func (r *Reporter) GetSample() *Sample {
	s := r.samplePool.Get().(*Sample)
	s.Start = time.Now()
	return s
}

func (r *Reporter) CaptureSample(s *Sample, advances int64) {
	s.Finish = time.Now()
	s.Advances = advances
	r.samples <- s
}

func (r *Reporter) Run(ctx context.Context) {
	defer func() {
		if r.proglog != nil {
			r.proglog.Close()
			r.proglog = nil
		}
	}()

	intervalAdvances := int64(0)
	lastReportTime := r.started

	t := time.NewTicker(r.config.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			// count anything still queued so the summary is exact
			for {
				select {
				case sample := <-r.samples:
					r.record(sample)
				default:
					return
				}
			}

		case sample := <-r.samples:
			intervalAdvances += sample.Advances
			r.record(sample)

		case tick := <-t.C:
			interval := tick.Sub(lastReportTime).Seconds()
			rate := int64(float64(intervalAdvances) / interval)
			done := r.done.Load()

			percent := 100.0
			if r.config.TotalAdvances > 0 {
				percent = float64(done) * 100 / float64(r.config.TotalAdvances)
			}
			r.printer.Printf("- %d advances/sec, %.1f%% done\n", rate, percent)

			if r.proglog != nil {
				fmt.Fprintf(r.proglog, "%.3f, %d, %d\n", tick.Sub(r.started).Seconds(), rate, done)
			}

			lastReportTime = tick
			intervalAdvances = 0
		}
	}
}

func (r *Reporter) record(sample *Sample) {
	r.done.Add(uint64(sample.Advances))
	r.jobTimes.Add(sample.Finish.Sub(sample.Start))
	r.samplePool.Put(sample)
}
