package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/mbiancareli/studio-manager/internal/domain/appointment"
	"github.com/mbiancareli/studio-manager/internal/domain/period"
	"github.com/mbiancareli/studio-manager/internal/models"
	"github.com/mbiancareli/studio-manager/internal/timezone"
)

// ======================================================
// LIST (day / week / month views)
// ======================================================

type ListAppointmentsInput struct {
	UserID uuid.UUID
	View   period.View // empty = no window, everything
	Date   *time.Time  // anchor, defaults to now
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	if in.View == "" {
		return uc.repo.ListAll(ctx, in.UserID)
	}

	ref := timezone.Now()
	if in.Date != nil {
		ref = in.Date.In(ref.Location())
	}

	start, end, err := period.ViewWindow(in.View, ref)
	if err != nil {
		return nil, err
	}

	return uc.repo.ListRange(ctx, in.UserID, start, end)
}

// ======================================================
// UPCOMING (next few hours)
// ======================================================

const DefaultUpcomingHours = 3

type UpcomingAppointments struct {
	repo domain.Repository
}

func NewUpcomingAppointments(repo domain.Repository) *UpcomingAppointments {
	return &UpcomingAppointments{repo: repo}
}

func (uc *UpcomingAppointments) Execute(
	ctx context.Context,
	userID uuid.UUID,
	hoursAhead int,
) ([]models.Appointment, error) {

	if hoursAhead <= 0 {
		hoursAhead = DefaultUpcomingHours
	}

	now := timezone.Now()
	until := now.Add(time.Duration(hoursAhead) * time.Hour)

	// the date column is day-granular, so fetch from the start of today
	// and narrow down with the clock-precise start time
	dayStart, _ := period.DayWindow(now)
	aps, err := uc.repo.ListUpcoming(ctx, userID, dayStart, until, domain.ActiveStatuses)
	if err != nil {
		return nil, err
	}

	upcoming := make([]models.Appointment, 0, len(aps))
	for _, ap := range aps {
		startAt := domain.StartAt(ap)
		if !startAt.Before(now) && !startAt.After(until) {
			upcoming = append(upcoming, ap)
		}
	}
	return upcoming, nil
}

// ======================================================
// TODAY'S PROJECTED EARNINGS
// ======================================================

type TodayEarnings struct {
	repo domain.Repository
}

func NewTodayEarnings(repo domain.Repository) *TodayEarnings {
	return &TodayEarnings{repo: repo}
}

// Execute sums the booked totals of today's still-active appointments.
func (uc *TodayEarnings) Execute(
	ctx context.Context,
	userID uuid.UUID,
) (float64, error) {

	start, end := period.DayWindow(timezone.Now())

	aps, err := uc.repo.ListUpcoming(ctx, userID, start, end, domain.ActiveStatuses)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, ap := range aps {
		total += ap.TotalAmount
	}
	return total, nil
}
