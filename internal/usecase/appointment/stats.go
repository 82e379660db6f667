package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type Stats struct {
	Total             int64                `json:"total"`
	ByStatus          []domain.StatusCount `json:"by_status"`
	TotalRevenue      float64              `json:"total_revenue"`
	TodayAppointments int64                `json:"today_appointments"`
}

type GetStats struct {
	repo domain.Repository
	tz   string
	now  func() time.Time
}

func NewGetStats(repo domain.Repository, tz string, now func() time.Time) *GetStats {
	if now == nil {
		now = time.Now
	}
	return &GetStats{repo: repo, tz: tz, now: now}
}

// Execute counts "today" in the clinic timezone.
func (uc *GetStats) Execute(ctx context.Context, a actor.Actor) (*Stats, error) {
	if !a.IsAdmin() {
		return nil, httperr.ErrForbidden("not_authorized")
	}

	byStatus, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := uc.repo.SumPaidRevenue(ctx)
	if err != nil {
		return nil, err
	}

	today, err := uc.repo.CountForDate(ctx, timezone.Today(uc.tz, uc.now()))
	if err != nil {
		return nil, err
	}

	st := &Stats{
		ByStatus:          byStatus,
		TotalRevenue:      revenue,
		TodayAppointments: today,
	}
	if st.ByStatus == nil {
		st.ByStatus = []domain.StatusCount{}
	}
	for _, c := range byStatus {
		st.Total += c.Count
	}
	return st, nil
}
