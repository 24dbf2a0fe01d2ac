package services

import (
	"time"

	"court_agenda_go/models"

	"gorm.io/gorm"
)

// HearingFilters contains optional filter criteria for period queries.
// All filters combine with logical AND.
type HearingFilters struct {
	Search      string // free text over title, docket and party
	ChamberType string
	Status      string
}

// StatusCounts holds per-status hearing totals for a fetched set
type StatusCounts struct {
	Scheduled   int `json:"scheduled"`
	Rescheduled int `json:"rescheduled"`
	Completed   int `json:"completed"`
	Cancelled   int `json:"cancelled"`
}

// Total returns the sum of all counters
func (s StatusCounts) Total() int {
	return s.Scheduled + s.Rescheduled + s.Completed + s.Cancelled
}

// ListHearingsByPeriod fetches hearings for a year, or a single month
// when month is 1-12, with optional filters. Results order by date and
// time ascending.
func ListHearingsByPeriod(db *gorm.DB, year int, month time.Month, filters HearingFilters) ([]models.Hearing, error) {
	var start, end time.Time
	if month >= time.January && month <= time.December {
		start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	} else {
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	}
	return listHearingsBetween(db, start, end, filters)
}

// ListHearingsByDay fetches all hearings on a single calendar date
func ListHearingsByDay(db *gorm.DB, date time.Time) ([]models.Hearing, error) {
	start := truncateToDate(date)
	return listHearingsBetween(db, start, start.AddDate(0, 0, 1), HearingFilters{})
}

func listHearingsBetween(db *gorm.DB, start, end time.Time, filters HearingFilters) ([]models.Hearing, error) {
	query := db.Model(&models.Hearing{}).Preload("Case").
		Where("hearing_date >= ? AND hearing_date < ?", start, end)

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where(
			"title LIKE ? OR docket_number LIKE ? OR party LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filters.ChamberType != "" {
		query = query.Where("chamber_type = ?", filters.ChamberType)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var hearings []models.Hearing
	err := query.Order("hearing_date asc").Order("hearing_time asc").Find(&hearings).Error
	return hearings, err
}

// AggregateStatusCounts tallies an already-fetched set of hearings by
// status. Pure function, no I/O; the counts always sum to the input
// length.
func AggregateStatusCounts(hearings []models.Hearing) StatusCounts {
	var counts StatusCounts
	for _, h := range hearings {
		switch h.Status {
		case models.HearingStatusScheduled:
			counts.Scheduled++
		case models.HearingStatusRescheduled:
			counts.Rescheduled++
		case models.HearingStatusCompleted:
			counts.Completed++
		case models.HearingStatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}
