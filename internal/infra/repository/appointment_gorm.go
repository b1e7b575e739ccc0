package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/mbiancareli/studio-manager/internal/domain/appointment"
	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Services (price lookup)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServices(
	ctx context.Context,
	userID uuid.UUID,
	serviceIDs []uuid.UUID,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, serviceIDs).
		Find(&services).Error; err != nil {
		return nil, err
	}

	// every requested id must resolve under the caller's ownership
	found := make(map[uuid.UUID]models.Service, len(services))
	for _, s := range services {
		found[s.ID] = s
	}

	ordered := make([]models.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		s, ok := found[id]
		if !ok {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		ordered = append(ordered, s)
	}

	return ordered, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) Save(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Services", "Client").Save(ap).Error
}

func (r *AppointmentGormRepository) ReplaceServices(
	ctx context.Context,
	ap *models.Appointment,
	services []models.Service,
) error {
	return r.db.WithContext(ctx).
		Model(ap).
		Association("Services").
		Replace(services)
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	userID uuid.UUID,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Appointment{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) Get(
	ctx context.Context,
	userID uuid.UUID,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where("id = ? AND user_id = ?", id, userID).
		First(&ap).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where("user_id = ?", userID).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListRange(
	ctx context.Context,
	userID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where(
			"user_id = ? AND date >= ? AND date <= ?",
			userID, start, end,
		).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListUpcoming(
	ctx context.Context,
	userID uuid.UUID,
	from time.Time,
	to time.Time,
	statuses []domain.Status,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where(
			"user_id = ? AND date >= ? AND date <= ? AND status IN ?",
			userID, from, to, statuses,
		).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
