// Package maintenance runs background housekeeping jobs.
package maintenance

import (
	"log"
	"time"

	"civicalert/backend/internal/storage"

	"github.com/robfig/cron/v3"
)

// Pruner deletes read notifications that have aged past the retention
// window. Unread notifications are kept until the user deletes them.
type Pruner struct {
	store         storage.Storage
	retentionDays int
	cron          *cron.Cron
}

func NewPruner(s storage.Storage, retentionDays int) *Pruner {
	return &Pruner{
		store:         s,
		retentionDays: retentionDays,
		cron:          cron.New(),
	}
}

// Start schedules the nightly prune run.
func (p *Pruner) Start() error {
	if _, err := p.cron.AddFunc("@daily", p.pruneOnce); err != nil {
		return err
	}
	p.cron.Start()
	log.Printf("Notification pruner started, retention %d days", p.retentionDays)
	return nil
}

// Stop halts the scheduler; a running job finishes first.
func (p *Pruner) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	log.Println("Notification pruner stopped")
}

func (p *Pruner) pruneOnce() {
	cutoff := time.Now().AddDate(0, 0, -p.retentionDays)
	count, err := p.store.DeleteReadNotificationsBefore(cutoff)
	if err != nil {
		log.Printf("ERROR: Notification prune failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Pruned %d read notifications older than %s", count, cutoff.Format(time.DateOnly))
	}
}
