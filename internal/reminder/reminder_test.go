package reminder

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/mbiancareli/studio-manager/internal/models"
)

func TestFillTemplate(t *testing.T) {
	ap := models.Appointment{
		Date:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
	}

	got := FillTemplate(models.DefaultConfirmMessage, ap)
	assert.Equal(t, "Olá! Confirmo seu agendamento para 12/03/2025 às 14:00.", got)
}

func TestFillTemplateWithoutPlaceholders(t *testing.T) {
	ap := models.Appointment{
		Date:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
	}

	got := FillTemplate("Até logo!", ap)
	assert.Equal(t, "Até logo!", got)
}

func TestSentDedup(t *testing.T) {
	s := NewScheduler(nil, nil, "", zerolog.Nop())

	id := uuid.New()
	now := time.Now()

	assert.False(t, s.alreadySent(id, now))
	s.markSent(id, now)
	assert.True(t, s.alreadySent(id, now))

	// entries expire after a day and can be re-sent
	assert.False(t, s.alreadySent(id, now.Add(25*time.Hour)))
}
