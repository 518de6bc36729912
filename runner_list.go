package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type RunnerList struct {
	*zap.SugaredLogger
	runners []*Runner
	stop    func()
	done    chan struct{}
}

func NewRunnerList() *RunnerList {
	return &RunnerList{
		SugaredLogger: Logger(),
		runners:       make([]*Runner, 0),
	}
}

func (rl *RunnerList) AddRunner(r *Runner) {
	rl.runners = append(rl.runners, r)
}

func (rl *RunnerList) Len() int {
	return len(rl.runners)
}

func (rl *RunnerList) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	rl.done = make(chan struct{})
	rl.stop = func() {
		cancel()
		wg.Wait()
	}

	for _, runner := range rl.runners {
		wg.Add(1)
		go func(r *Runner) {
			r.Run(ctx)
			wg.Done()
		}(runner)
	}

	go func(done chan struct{}) {
		wg.Wait()
		close(done)
	}(rl.done)

	rl.Infof("%d runners started", len(rl.runners))
}

// Done is closed once every runner has returned, whether because the jobs
// ran out or Stop was called.
func (rl *RunnerList) Done() <-chan struct{} {
	return rl.done
}

func (rl *RunnerList) Wait() {
	if rl.done != nil {
		<-rl.done
	}
}

func (rl *RunnerList) Stop() {
	if rl.stop != nil {
		rl.stop()
		rl.stop = nil
		rl.Infof("stopped")
	}
}
