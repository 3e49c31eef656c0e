package background

import (
	"context"
	"log"
	"time"

	"stocktrack/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the background maintenance jobs.
type Scheduler struct {
	scheduler   gocron.Scheduler
	reorderScan *jobs.ReorderScanService
}

func NewScheduler(reorderScan *jobs.ReorderScanService) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler:   scheduler,
		reorderScan: reorderScan,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			if err := s.reorderScan.Run(context.Background()); err != nil {
				log.Printf("Scheduled reorder scan failed: %v", err)
			}
		}),
		gocron.WithName("reorder-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	log.Println("Starting background job scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	log.Println("Stopping background job scheduler")
	return s.scheduler.Shutdown()
}
