package jobs

import (
	"log"
	"time"

	"property-dashboard-server/models"
	"property-dashboard-server/services"
	"property-dashboard-server/storage"
)

// renotifyAfter bounds how often the same overdue order is surfaced again
const renotifyAfter = 24 * time.Hour

// OverdueJob periodically scans for work orders whose scheduled date has
// passed while they are still open, and surfaces a reminder notification.
// The job never mutates records.
type OverdueJob struct {
	repo     *storage.WorkOrderRepository
	notifier services.Notifier

	notified map[int64]time.Time
	stopChan chan bool
	interval time.Duration
}

// NewOverdueJob creates a new overdue-reminder job
func NewOverdueJob(repo *storage.WorkOrderRepository, notifier services.Notifier) *OverdueJob {
	return &OverdueJob{
		repo:     repo,
		notifier: notifier,
		notified: make(map[int64]time.Time),
		stopChan: make(chan bool),
		interval: time.Hour,
	}
}

// Start begins the overdue job
func (j *OverdueJob) Start() {
	go j.run()
	log.Println("🚀 Overdue reminder job started")
}

// Stop stops the overdue job
func (j *OverdueJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Overdue reminder job stopped")
}

// run executes the overdue job
func (j *OverdueJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.CheckOverdueOrders()
		case <-j.stopChan:
			return
		}
	}
}

// CheckOverdueOrders finds open, past-schedule work orders and notifies
func (j *OverdueJob) CheckOverdueOrders() {
	now := time.Now()
	today := now.Format(models.DateLayout)

	for _, order := range j.repo.GetAll() {
		if !order.IsOpen() || order.ScheduledDate == "" {
			continue
		}
		if order.ScheduledDate >= today {
			continue
		}
		if last, ok := j.notified[order.ID]; ok && now.Sub(last) < renotifyAfter {
			continue
		}

		log.Printf("⏰ Work order %d is overdue (scheduled %s)", order.ID, order.ScheduledDate)
		reminder := order
		j.notifier.NotifyWorkOrderOverdue(&reminder)
		j.notified[order.ID] = now
	}
}
