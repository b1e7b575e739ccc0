package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbiancareli/studio-manager/internal/audit"
	domain "github.com/mbiancareli/studio-manager/internal/domain/appointment"
	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/models"
	"github.com/mbiancareli/studio-manager/internal/timezone"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	services     map[uuid.UUID]models.Service
	appointments map[uuid.UUID]*models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     make(map[uuid.UUID]models.Service),
		appointments: make(map[uuid.UUID]*models.Appointment),
	}
}

func (r *fakeRepo) addService(userID uuid.UUID, name string, price float64) models.Service {
	s := models.Service{ID: uuid.New(), UserID: userID, Name: name, Price: price}
	r.services[s.ID] = s
	return s
}

func (r *fakeRepo) GetServices(_ context.Context, userID uuid.UUID, serviceIDs []uuid.UUID) ([]models.Service, error) {
	out := make([]models.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		s, ok := r.services[id]
		if !ok || s.UserID != userID {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRepo) Create(_ context.Context, ap *models.Appointment) error {
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) Save(_ context.Context, ap *models.Appointment) error {
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) ReplaceServices(_ context.Context, ap *models.Appointment, services []models.Service) error {
	if stored, ok := r.appointments[ap.ID]; ok {
		stored.Services = services
	}
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	ap, ok := r.appointments[id]
	if !ok || ap.UserID != userID {
		return httperr.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeRepo) Get(_ context.Context, userID, id uuid.UUID) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok || ap.UserID != userID {
		return nil, httperr.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) ListAll(_ context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.UserID == userID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.UserID == userID && !ap.Date.Before(start) && !ap.Date.After(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListUpcoming(_ context.Context, userID uuid.UUID, from, to time.Time, statuses []domain.Status) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.UserID != userID || ap.Date.Before(from) || ap.Date.After(to) {
			continue
		}
		for _, s := range statuses {
			if ap.Status == string(s) {
				out = append(out, *ap)
				break
			}
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

type fakeAudit struct {
	events []audit.Event
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

func (a *fakeAudit) lastAction() string {
	if len(a.events) == 0 {
		return ""
	}
	return a.events[len(a.events)-1].Action
}

// ======================================================
// CREATE
// ======================================================

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	sink := &fakeAudit{}
	uc := NewCreateAppointment(repo, sink)

	userID := uuid.New()
	corte := repo.addService(userID, "Corte", 80)
	escova := repo.addService(userID, "Escova", 60)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:     userID,
		ClientID:   uuid.New(),
		ServiceIDs: []uuid.UUID{corte.ID, escova.ID},
		Date:       time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "11:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 140.0, ap.TotalAmount)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Len(t, ap.Services, 2)
	assert.Equal(t, "appointment_created", sink.lastAction())

	stored, err := repo.Get(context.Background(), userID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, 140.0, stored.TotalAmount)
}

func TestCreateAppointmentValidation(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, &fakeAudit{})

	userID := uuid.New()
	corte := repo.addService(userID, "Corte", 80)

	// no services
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID: userID,
	})
	assert.True(t, httperr.IsBusiness(err, "missing_services"))

	// unknown status
	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:     userID,
		ServiceIDs: []uuid.UUID{corte.ID},
		Status:     "pending",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	// foreign service id
	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:     userID,
		ServiceIDs: []uuid.UUID{uuid.New()},
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateAppointmentOwnerScoping(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, &fakeAudit{})

	other := repo.addService(uuid.New(), "Corte", 80)

	// another owner's service does not resolve
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:     uuid.New(),
		ServiceIDs: []uuid.UUID{other.ID},
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

// ======================================================
// UPDATE
// ======================================================

func seedAppointment(t *testing.T, repo *fakeRepo, userID uuid.UUID, services ...models.Service) *models.Appointment {
	t.Helper()

	ids := make([]uuid.UUID, len(services))
	for i, s := range services {
		ids[i] = s.ID
	}

	uc := NewCreateAppointment(repo, &fakeAudit{})
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:     userID,
		ClientID:   uuid.New(),
		ServiceIDs: ids,
		Date:       time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "11:00",
	})
	require.NoError(t, err)
	return ap
}

func TestUpdateAppointmentRecomputesTotal(t *testing.T) {
	repo := newFakeRepo()
	sink := &fakeAudit{}
	uc := NewUpdateAppointment(repo, sink)

	userID := uuid.New()
	corte := repo.addService(userID, "Corte", 80)
	coloracao := repo.addService(userID, "Coloração", 200)

	ap := seedAppointment(t, repo, userID, corte)
	require.Equal(t, 80.0, ap.TotalAmount)

	updated, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		UserID:     userID,
		ID:         ap.ID,
		ServiceIDs: []uuid.UUID{corte.ID, coloracao.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, 280.0, updated.TotalAmount)
	assert.Equal(t, "appointment_updated", sink.lastAction())
}

func TestUpdateAppointmentKeepsBookedTotal(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, &fakeAudit{})

	userID := uuid.New()
	corte := repo.addService(userID, "Corte", 80)
	ap := seedAppointment(t, repo, userID, corte)

	// price raise after booking
	raised := repo.services[corte.ID]
	raised.Price = 120
	repo.services[corte.ID] = raised

	// a patch that does not touch the service set keeps the booked total
	notes := "retoque"
	updated, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		UserID: userID,
		ID:     ap.ID,
		Notes:  &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, 80.0, updated.TotalAmount)
	assert.Equal(t, "retoque", updated.Notes)
}

func TestUpdateAppointmentInvalidStatus(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, &fakeAudit{})

	userID := uuid.New()
	corte := repo.addService(userID, "Corte", 80)
	ap := seedAppointment(t, repo, userID, corte)

	bad := "pending"
	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		UserID: userID,
		ID:     ap.ID,
		Status: &bad,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestUpdateAppointmentNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, &fakeAudit{})

	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		UserID: uuid.New(),
		ID:     uuid.New(),
	})
	assert.True(t, httperr.IsNotFound(err))
}

// ======================================================
// REMOVE
// ======================================================

func TestRemoveWithReasonSoftCancels(t *testing.T) {
	repo := newFakeRepo()
	sink := &fakeAudit{}
	uc := NewRemoveAppointment(repo, sink)

	userID := uuid.New()
	corte := repo.addService(userID, "Corte", 80)
	ap := seedAppointment(t, repo, userID, corte)

	err := uc.Execute(context.Background(), userID, ap.ID, "cliente viajou")
	require.NoError(t, err)

	stored, err := repo.Get(context.Background(), userID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.Equal(t, "cliente viajou", stored.CancellationReason)
	assert.Equal(t, "appointment_cancelled", sink.lastAction())
}

func TestRemoveWithoutReasonDeletes(t *testing.T) {
	repo := newFakeRepo()
	sink := &fakeAudit{}
	uc := NewRemoveAppointment(repo, sink)

	userID := uuid.New()
	corte := repo.addService(userID, "Corte", 80)
	ap := seedAppointment(t, repo, userID, corte)

	err := uc.Execute(context.Background(), userID, ap.ID, "")
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), userID, ap.ID)
	assert.True(t, httperr.IsNotFound(err))
	assert.Equal(t, "appointment_deleted", sink.lastAction())
}

func TestRemoveNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewRemoveAppointment(repo, &fakeAudit{})

	err := uc.Execute(context.Background(), uuid.New(), uuid.New(), "")
	assert.True(t, httperr.IsNotFound(err))
}

// ======================================================
// LIST / EARNINGS
// ======================================================

func TestListAppointmentsByDay(t *testing.T) {
	repo := newFakeRepo()
	uc := NewListAppointments(repo)

	userID := uuid.New()
	loc := timezone.Location("")
	anchor := time.Date(2025, 3, 12, 0, 0, 0, 0, loc)

	onDay := &models.Appointment{ID: uuid.New(), UserID: userID, Date: anchor, Status: "scheduled"}
	offDay := &models.Appointment{ID: uuid.New(), UserID: userID, Date: anchor.AddDate(0, 0, 3), Status: "scheduled"}
	repo.appointments[onDay.ID] = onDay
	repo.appointments[offDay.ID] = offDay

	got, err := uc.Execute(context.Background(), ListAppointmentsInput{
		UserID: userID,
		View:   "day",
		Date:   &anchor,
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, onDay.ID, got[0].ID)
}

func TestListAppointmentsByWeekAndMonth(t *testing.T) {
	repo := newFakeRepo()
	uc := NewListAppointments(repo)

	userID := uuid.New()
	loc := timezone.Location("")
	// wednesday
	anchor := time.Date(2025, 3, 12, 0, 0, 0, 0, loc)

	sameWeek := &models.Appointment{ID: uuid.New(), UserID: userID, Date: anchor.AddDate(0, 0, 2)}
	sameMonthOnly := &models.Appointment{ID: uuid.New(), UserID: userID, Date: anchor.AddDate(0, 0, 12)}
	otherMonth := &models.Appointment{ID: uuid.New(), UserID: userID, Date: anchor.AddDate(0, 1, 0)}
	repo.appointments[sameWeek.ID] = sameWeek
	repo.appointments[sameMonthOnly.ID] = sameMonthOnly
	repo.appointments[otherMonth.ID] = otherMonth

	week, err := uc.Execute(context.Background(), ListAppointmentsInput{
		UserID: userID, View: "week", Date: &anchor,
	})
	require.NoError(t, err)
	assert.Len(t, week, 1)

	month, err := uc.Execute(context.Background(), ListAppointmentsInput{
		UserID: userID, View: "month", Date: &anchor,
	})
	require.NoError(t, err)
	assert.Len(t, month, 2)
}

func TestListAppointmentsInvalidView(t *testing.T) {
	uc := NewListAppointments(newFakeRepo())

	_, err := uc.Execute(context.Background(), ListAppointmentsInput{
		UserID: uuid.New(),
		View:   "fortnight",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_view"))
}

func TestListAppointmentsNoViewReturnsAll(t *testing.T) {
	repo := newFakeRepo()
	uc := NewListAppointments(repo)

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		ap := &models.Appointment{ID: uuid.New(), UserID: userID, Date: time.Now().AddDate(0, 0, i*40)}
		repo.appointments[ap.ID] = ap
	}

	got, err := uc.Execute(context.Background(), ListAppointmentsInput{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestUpcomingAppointments(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpcomingAppointments(repo)

	userID := uuid.New()
	now := timezone.Now()

	soon := now.Add(30 * time.Minute)
	within := &models.Appointment{
		ID: uuid.New(), UserID: userID, Status: "scheduled",
		Date:      time.Date(soon.Year(), soon.Month(), soon.Day(), 0, 0, 0, 0, soon.Location()),
		StartTime: soon.Format("15:04"),
	}

	far := now.Add(48 * time.Hour)
	beyond := &models.Appointment{
		ID: uuid.New(), UserID: userID, Status: "scheduled",
		Date:      time.Date(far.Year(), far.Month(), far.Day(), 0, 0, 0, 0, far.Location()),
		StartTime: far.Format("15:04"),
	}

	cancelled := &models.Appointment{
		ID: uuid.New(), UserID: userID, Status: "cancelled",
		Date:      within.Date,
		StartTime: within.StartTime,
	}

	repo.appointments[within.ID] = within
	repo.appointments[beyond.ID] = beyond
	repo.appointments[cancelled.ID] = cancelled

	got, err := uc.Execute(context.Background(), userID, 3)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, within.ID, got[0].ID)
}

func TestTodayEarnings(t *testing.T) {
	repo := newFakeRepo()
	uc := NewTodayEarnings(repo)

	userID := uuid.New()
	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	add := func(status string, total float64, date time.Time) {
		ap := &models.Appointment{
			ID: uuid.New(), UserID: userID, Status: status,
			Date: date, TotalAmount: total, StartTime: "10:00",
		}
		repo.appointments[ap.ID] = ap
	}

	add("scheduled", 80, today)
	add("confirmed", 120, today)
	// neither completed nor tomorrow's bookings count
	add("completed", 999, today)
	add("scheduled", 999, today.AddDate(0, 0, 1))

	total, err := uc.Execute(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, total)
}
