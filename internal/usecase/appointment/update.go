package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbiancareli/studio-manager/internal/audit"
	domain "github.com/mbiancareli/studio-manager/internal/domain/appointment"
	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateAppointmentInput is a field-level patch: nil pointers leave the
// stored value untouched.
type UpdateAppointmentInput struct {
	UserID uuid.UUID
	ID     uuid.UUID

	ClientID   *uuid.UUID
	ServiceIDs []uuid.UUID

	Date      *time.Time
	StartTime *string
	EndTime   *string

	Status             *string
	Notes              *string
	CancellationReason *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit AuditSink
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit AuditSink,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.Get(ctx, in.UserID, in.ID)
	if err != nil {
		return nil, err
	}

	// a new service set recomputes the total from current prices;
	// otherwise the booked total stays as it was
	if in.ServiceIDs != nil {
		services, err := uc.repo.GetServices(ctx, in.UserID, in.ServiceIDs)
		if err != nil {
			return nil, err
		}
		if err := uc.repo.ReplaceServices(ctx, ap, services); err != nil {
			return nil, err
		}
		ap.Services = services
		ap.TotalAmount = domain.TotalAmount(services)
	}

	if in.ClientID != nil {
		ap.ClientID = *in.ClientID
	}
	if in.Date != nil {
		ap.Date = *in.Date
	}
	if in.StartTime != nil {
		ap.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		ap.EndTime = *in.EndTime
	}
	if in.Status != nil {
		if !domain.IsValidStatus(domain.Status(*in.Status)) {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		ap.Status = *in.Status
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.CancellationReason != nil {
		ap.CancellationReason = *in.CancellationReason
	}

	if err := uc.repo.Save(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
