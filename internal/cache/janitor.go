package cache

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweepable is any store the janitor can expire entries from.
type Sweepable interface {
	Sweep(maxAge time.Duration) int
	Len() int
}

// Janitor periodically removes long-expired entries from registered caches,
// keeping memory bounded in long-running deployments.
type Janitor struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	maxAge    time.Duration
	caches    []Sweepable
}

// NewJanitor creates a janitor sweeping the given caches every interval,
// removing entries older than maxAge.
func NewJanitor(interval, maxAge time.Duration, caches ...Sweepable) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		maxAge:    maxAge,
		caches:    caches,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (j *Janitor) Start() error {
	if len(j.caches) == 0 || j.interval <= 0 {
		log.Println("janitor: nothing to sweep; not starting")
		return nil
	}

	_, err := j.scheduler.Every(j.interval).Do(func() {
		if removed, kept := j.sweepAll(); removed > 0 {
			log.Printf("janitor: swept %d expired cache entries, %d remain", removed, kept)
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// sweepAll runs one sweep pass over every registered cache.
func (j *Janitor) sweepAll() (removed, kept int) {
	for _, c := range j.caches {
		removed += c.Sweep(j.maxAge)
		kept += c.Len()
	}
	return removed, kept
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
