package services

import (
	"math"
	"time"

	"property-dashboard-server/models"
	"property-dashboard-server/storage"
)

// MaintenanceStats is a point-in-time summary over a trailing window
type MaintenanceStats struct {
	Total                int                      `json:"total"`
	Pending              int                      `json:"pending"`
	InProgress           int                      `json:"in_progress"`
	Completed            int                      `json:"completed"`
	Urgent               int                      `json:"urgent"`
	TotalCost            float64                  `json:"total_cost"`
	AvgResolutionTime    int                      `json:"avg_resolution_time"`
	MostFrequentCategory models.WorkOrderCategory `json:"most_frequent_category"`
	CompletionRate       int                      `json:"completion_rate"`
}

// StatsService derives operational statistics by scanning the current
// repository contents. Metrics are recomputed fresh on every call: the
// collection is small enough that full rescans are cheaper than keeping
// incremental aggregates correct.
type StatsService struct {
	repo *storage.WorkOrderRepository
	// now is swappable for tests
	now func() time.Time
}

// NewStatsService creates an analytics engine over the repository
func NewStatsService(repo *storage.WorkOrderRepository) *StatsService {
	return &StatsService{repo: repo, now: time.Now}
}

// GetStats summarizes work orders whose created_at falls within the trailing
// windowDays (default 30)
func (s *StatsService) GetStats(windowDays int) MaintenanceStats {
	if windowDays <= 0 {
		windowDays = 30
	}
	cutoff := s.now().AddDate(0, 0, -windowDays)

	stats := MaintenanceStats{MostFrequentCategory: models.CategoryOther}

	categoryCounts := map[models.WorkOrderCategory]int{}
	var categoryOrder []models.WorkOrderCategory
	var resolutionDays []int

	for _, order := range s.repo.GetAll() {
		if order.CreatedAt.Before(cutoff) {
			continue
		}

		stats.Total++
		switch order.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusCompleted:
			stats.Completed++
			stats.TotalCost += order.CostOrEstimate()
			if days, ok := resolutionTimeDays(order); ok {
				resolutionDays = append(resolutionDays, days)
			}
		}
		if order.Priority == models.PriorityUrgent && order.IsOpen() {
			stats.Urgent++
		}

		if _, seen := categoryCounts[order.Category]; !seen {
			categoryOrder = append(categoryOrder, order.Category)
		}
		categoryCounts[order.Category]++
	}

	// Ties go to the first-encountered category in iteration order
	best := 0
	for _, category := range categoryOrder {
		if categoryCounts[category] > best {
			best = categoryCounts[category]
			stats.MostFrequentCategory = category
		}
	}

	if len(resolutionDays) > 0 {
		sum := 0
		for _, d := range resolutionDays {
			sum += d
		}
		stats.AvgResolutionTime = int(math.Round(float64(sum) / float64(len(resolutionDays))))
	}

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(100 * float64(stats.Completed) / float64(stats.Total)))
	}

	return stats
}

// GetCostsByCategory sums completed-order costs per category over the
// trailing windowMonths (default 12). Every known category key is present in
// the result even when zero.
func (s *StatsService) GetCostsByCategory(windowMonths int) map[models.WorkOrderCategory]float64 {
	if windowMonths <= 0 {
		windowMonths = 12
	}
	cutoff := s.now().AddDate(0, -windowMonths, 0)

	costs := make(map[models.WorkOrderCategory]float64, len(models.AllCategories))
	for _, category := range models.AllCategories {
		costs[category] = 0
	}

	for _, order := range s.repo.GetAll() {
		if order.Status != models.StatusCompleted || order.CompletedDate == "" {
			continue
		}
		completed, err := time.Parse(models.DateLayout, order.CompletedDate)
		if err != nil || completed.Before(cutoff) {
			continue
		}
		costs[order.Category] += order.CostOrEstimate()
	}

	return costs
}

// resolutionTimeDays returns ceil(completed - requested) in days when both
// dates are present and parseable
func resolutionTimeDays(order models.WorkOrder) (int, bool) {
	if order.CompletedDate == "" || order.RequestDate == "" {
		return 0, false
	}
	completed, err := time.Parse(models.DateLayout, order.CompletedDate)
	if err != nil {
		return 0, false
	}
	requested, err := time.Parse(models.DateLayout, order.RequestDate)
	if err != nil {
		return 0, false
	}
	return int(math.Ceil(completed.Sub(requested).Hours() / 24)), true
}
