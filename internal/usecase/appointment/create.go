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

type CreateAppointmentInput struct {
	UserID uuid.UUID

	ClientID   uuid.UUID
	ServiceIDs []uuid.UUID

	Date      time.Time
	StartTime string
	EndTime   string

	Status string
	Notes  string
}

// ======================================================
// USE CASE
// ======================================================

// AuditSink receives the audit events the use cases emit. Satisfied by
// *audit.Dispatcher.
type AuditSink interface {
	Dispatch(ev audit.Event)
}

type CreateAppointment struct {
	repo  domain.Repository
	audit AuditSink
}

func NewCreateAppointment(
	repo domain.Repository,
	audit AuditSink,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("missing_services")
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		if !domain.IsValidStatus(domain.Status(in.Status)) {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		status = domain.Status(in.Status)
	}

	// price lookup is owner-scoped: a foreign or unknown id fails the call
	services, err := uc.repo.GetServices(ctx, in.UserID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID:      in.UserID,
		ClientID:    in.ClientID,
		Services:    services,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Status:      string(status),
		TotalAmount: domain.TotalAmount(services),
		Notes:       in.Notes,
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
