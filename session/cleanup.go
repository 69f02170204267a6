package session

import (
	"github.com/robfig/cron/v3"
)

// CleanupScheduler runs Store.Cleanup on a 1-hour interval using the
// standard 5-field cron parser.
type CleanupScheduler struct {
	cron *cron.Cron
}

// StartCleanupScheduler schedules store.Cleanup() hourly and starts the
// scheduler in the background. Callers should Stop() it on shutdown.
func StartCleanupScheduler(store *Store, onEvicted func(count int)) (*CleanupScheduler, error) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		count := store.Cleanup()
		if onEvicted != nil {
			onEvicted(count)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return &CleanupScheduler{cron: c}, nil
}

// Stop halts the scheduler, waiting for any in-flight run to finish.
func (s *CleanupScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
