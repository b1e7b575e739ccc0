// Package reminder runs the background job that pings clients about
// appointments starting soon, using the owner's WhatsApp templates.
package reminder

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/mbiancareli/studio-manager/internal/domain/appointment"
	"github.com/mbiancareli/studio-manager/internal/lookup"
	"github.com/mbiancareli/studio-manager/internal/models"
	"github.com/mbiancareli/studio-manager/internal/timezone"
)

// LeadWindow is how far ahead of the start time a reminder goes out.
const LeadWindow = time.Hour

type Scheduler struct {
	db     *gorm.DB
	sender *lookup.WhatsAppSender
	spec   string
	log    zerolog.Logger

	cron *cron.Cron

	mu   sync.Mutex
	sent map[uuid.UUID]time.Time
}

func NewScheduler(db *gorm.DB, sender *lookup.WhatsAppSender, spec string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		sender: sender,
		spec:   spec,
		log:    log,
		sent:   make(map[uuid.UUID]time.Time),
	}
}

func (s *Scheduler) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.spec, s.Tick); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("reminder scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Tick finds active appointments starting within the lead window and
// sends each client the owner's confirm template. Appointments already
// reminded are skipped until the dedupe entry expires.
func (s *Scheduler) Tick() {
	now := timezone.Now()
	until := now.Add(LeadWindow)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var aps []models.Appointment
	if err := s.db.
		Preload("Client").
		Where(
			"date >= ? AND date <= ? AND status IN ?",
			dayStart, until, domain.ActiveStatuses,
		).
		Find(&aps).Error; err != nil {
		s.log.Error().Err(err).Msg("reminder query failed")
		return
	}

	users := make(map[uuid.UUID]*models.User)

	for _, ap := range aps {
		startAt := domain.StartAt(ap)
		if startAt.Before(now) || startAt.After(until) {
			continue
		}
		if s.alreadySent(ap.ID, now) {
			continue
		}

		user, ok := users[ap.UserID]
		if !ok {
			var u models.User
			if err := s.db.First(&u, "id = ?", ap.UserID).Error; err != nil {
				s.log.Error().Err(err).Str("user_id", ap.UserID.String()).Msg("reminder owner lookup failed")
				continue
			}
			user = &u
			users[ap.UserID] = user
		}

		message := FillTemplate(user.WhatsAppMessages.Confirm, ap)

		result, err := s.sender.Send(ap.Client.Phone, message)
		if err != nil {
			s.log.Error().Err(err).
				Str("appointment_id", ap.ID.String()).
				Msg("reminder send failed")
			continue
		}

		s.markSent(ap.ID, now)
		s.log.Info().
			Str("appointment_id", ap.ID.String()).
			Str("sid", result.SID).
			Msg("reminder sent")
	}
}

// FillTemplate replaces the {date} and {time} placeholders with the
// appointment's day and start time.
func FillTemplate(template string, ap models.Appointment) string {
	out := strings.ReplaceAll(template, "{date}", ap.Date.Format("02/01/2006"))
	return strings.ReplaceAll(out, "{time}", ap.StartTime)
}

func (s *Scheduler) alreadySent(id uuid.UUID, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// prune stale entries so the map does not grow without bound
	for k, at := range s.sent {
		if now.Sub(at) > 24*time.Hour {
			delete(s.sent, k)
		}
	}

	_, ok := s.sent[id]
	return ok
}

func (s *Scheduler) markSent(id uuid.UUID, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[id] = now
}
