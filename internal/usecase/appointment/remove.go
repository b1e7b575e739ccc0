package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbiancareli/studio-manager/internal/audit"
	domain "github.com/mbiancareli/studio-manager/internal/domain/appointment"
)

// ======================================================
// USE CASE
// ======================================================

type RemoveAppointment struct {
	repo  domain.Repository
	audit AuditSink
}

func NewRemoveAppointment(
	repo domain.Repository,
	audit AuditSink,
) *RemoveAppointment {
	return &RemoveAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute removes an appointment: with a reason it soft-cancels, keeping
// the record with status=cancelled; without one it hard-deletes.
func (uc *RemoveAppointment) Execute(
	ctx context.Context,
	userID uuid.UUID,
	id uuid.UUID,
	reason string,
) error {

	if reason != "" {
		ap, err := uc.repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}

		domain.Cancel(ap, reason)

		if err := uc.repo.Save(ctx, ap); err != nil {
			return err
		}

		uc.audit.Dispatch(audit.Event{
			UserID:   userID,
			Action:   "appointment_cancelled",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
		return nil
	}

	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})
	return nil
}
