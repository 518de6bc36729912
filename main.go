package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/oklog/ulid/v2"
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/spf13/viper"
)

func main() {
	var err error
	logger := Logger().Named("main")

	v := viper.GetViper()
	setDefaults(v)

	if err = bindFlags(v, os.Args[1:]); err != nil {
		logger.Errorf("%s", err)
		os.Exit(-1)
	}

	if err = readConfig(v); err != nil {
		logger.Errorf("%s", err)
		os.Exit(-1)
	}

	if err = SetLogLevel(v.GetString("log.level")); err != nil {
		logger.Errorf("bad log.level: %s", err)
		os.Exit(-1)
	}

	cfg, err := LoadSearchConfig(v)

	if err != nil {
		logger.Errorf("%s", err)
		os.Exit(-1)
	}

	reporterInterval := v.GetDuration("reporter.interval")
	if reporterInterval <= 0 {
		logger.Errorf("no reporter interval specified; set 'reporter.interval' in config.yaml")
		os.Exit(-1)
	}

	runId := ulid.Make().String()
	outDir := v.GetString("output.dir")

	store, err := NewFileResultStore(outDir, v.GetString("output.compress"))

	if err != nil {
		logger.Errorf("%s", err)
		os.Exit(-1)
	}

	reporter, err := NewReporter(&ReporterConfig{
		Interval:      reporterInterval,
		ProgressLog:   v.GetBool("reporter.logprogress"),
		Dir:           outDir,
		RunId:         runId,
		TotalAdvances: uint64(len(cfg.Seeds)) * (uint64(cfg.MaxAdvances) + 1),
	})

	if err != nil {
		logger.Errorf("failed creating reporter: %s", err)
		os.Exit(-1)
	}

	logger.Infof("run %s: %s %s, lead %s, %d seeds x %d advances from %d",
		runId, cfg.Template.Info.Name, cfg.Method, cfg.Lead, len(cfg.Seeds), uint64(cfg.MaxAdvances)+1, cfg.InitialAdvances)
	logger.Infof("running... press Control-C to stop.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	results, err := Scan(ctx, cfg, reporter)
	interrupted := ctx.Err() != nil
	stop()

	reporter.Stop()

	if err != nil {
		logger.Errorf("runner error: %s", err)
		os.Exit(-1)
	}

	if interrupted {
		logger.Infof("Control-C, stopped; no results written.")
		os.Exit(0)
	}

	name := fmt.Sprintf("results.%s.csv", runId)
	rows, err := WriteResults(store, name, results)

	if err != nil {
		logger.Errorf("cannot write results: %s", err)
		os.Exit(-1)
	}

	logger.Infof("%d matching states written to %s", rows, store.Path(name))

	if v.GetBool("output.stats") {
		monkit.Default.Stats(func(key monkit.SeriesKey, field string, val float64) {
			logger.Infof("%s %g", key.WithField(field), val)
		})
	}

	os.Exit(0)
}

// Scan fans the configured window out to cfg.Runners runners and collects
// every job's result in output order, so the outcome does not depend on the
// runner count. It returns early on ctx cancellation or the first runner
// error. reporter may be nil.
func Scan(ctx context.Context, cfg *SearchConfig, reporter *Reporter) ([]*JobResult, error) {
	vendor := NewJobVendor(cfg.Seeds, cfg.MaxAdvances, cfg.Chunk)
	defer vendor.Stop()

	results := make(chan JobResult, cfg.Runners)
	errchan := make(chan error, 10)

	rl := NewRunnerList()
	for i := 0; i < cfg.Runners; i++ {
		rl.AddRunner(NewRunner(cfg, vendor.Jobs(), reporter, results, errchan, i))
	}

	rl.Start()
	defer rl.Stop()

	collected := make([]*JobResult, vendor.Total())
	store := func(res JobResult) {
		collected[res.Job.Ordinal] = &res
	}

	for {
		select {
		case <-ctx.Done():
			return nil, nil

		case err := <-errchan:
			return nil, err

		case res := <-results:
			store(res)

		case <-rl.Done():
			// runners may have handed off their last results just before exiting
			for {
				select {
				case res := <-results:
					store(res)
					continue
				case err := <-errchan:
					return nil, err
				default:
				}
				break
			}

			for i, res := range collected {
				if res == nil {
					return nil, fmt.Errorf("job %d never completed", i)
				}
			}

			return collected, nil
		}
	}
}
