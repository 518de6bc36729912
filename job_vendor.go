package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Job is one contiguous slice of a seed's advance window. Start is relative
// to the configured initial advances.
type Job struct {
	Ordinal   int // position in output order
	SeedIndex int
	Seed      uint32
	Start     uint32
	Count     uint32
}

// JobVendor cuts every seed's window [0, max_advances] into jobs of at most
// chunk advances and hands them out to runners.
type JobVendor struct {
	*zap.SugaredLogger
	jobs  chan Job
	total int
	stop  func()
}

const maxPendingJobs = 100

func NewJobVendor(seeds []uint32, maxAdvances uint32, chunk uint32) *JobVendor {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	perSeed := int((uint64(maxAdvances) + uint64(chunk)) / uint64(chunk))

	v := &JobVendor{
		SugaredLogger: Logger().With(zap.String("component", "jobs")),
		jobs:          make(chan Job, maxPendingJobs),
		total:         perSeed * len(seeds),
		stop: func() {
			cancel()
			wg.Wait()
		},
	}

	v.Infof("%d seeds, %d jobs of up to %d advances", len(seeds), v.total, chunk)

	wg.Add(1)
	go func() {
		v.run(ctx, seeds, maxAdvances, chunk)
		wg.Done()
	}()

	return v
}

// Jobs is closed once every job has been handed out or the vendor stopped.
func (v *JobVendor) Jobs() <-chan Job {
	return v.jobs
}

// Total is the number of jobs the vendor will produce.
func (v *JobVendor) Total() int {
	return v.total
}

func (v *JobVendor) Stop() {
	v.stop()
}

func (v *JobVendor) run(ctx context.Context, seeds []uint32, maxAdvances uint32, chunk uint32) {
	defer close(v.jobs)
	ordinal := 0

	for i, seed := range seeds {
		// 64-bit so a window ending at 0xFFFFFFFF still terminates
		for start := uint64(0); start <= uint64(maxAdvances); start += uint64(chunk) {
			count := uint64(chunk)
			if remaining := uint64(maxAdvances) - start + 1; remaining < count {
				count = remaining
			}

			job := Job{
				Ordinal:   ordinal,
				SeedIndex: i,
				Seed:      seed,
				Start:     uint32(start),
				Count:     uint32(count),
			}

			select {
			case <-ctx.Done():
				return
			case v.jobs <- job:
				ordinal++
			}
		}
	}
}
