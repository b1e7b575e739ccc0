package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbiancareli/studio-manager/internal/models"
)

// Repository is the owner-scoped persistence seam for the appointment
// ledger. Reads hydrate the client and service references explicitly.
type Repository interface {
	// -------- Services (price lookup) --------
	GetServices(
		ctx context.Context,
		userID uuid.UUID,
		serviceIDs []uuid.UUID,
	) ([]models.Service, error)

	// -------- Appointment (write) --------
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Save(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ReplaceServices(
		ctx context.Context,
		ap *models.Appointment,
		services []models.Service,
	) error

	Delete(
		ctx context.Context,
		userID uuid.UUID,
		id uuid.UUID,
	) error

	// -------- Appointment (read) --------
	Get(
		ctx context.Context,
		userID uuid.UUID,
		id uuid.UUID,
	) (*models.Appointment, error)

	ListAll(
		ctx context.Context,
		userID uuid.UUID,
	) ([]models.Appointment, error)

	ListRange(
		ctx context.Context,
		userID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListUpcoming(
		ctx context.Context,
		userID uuid.UUID,
		from time.Time,
		to time.Time,
		statuses []Status,
	) ([]models.Appointment, error)
}
