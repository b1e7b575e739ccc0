package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mbiancareli/studio-manager/internal/models"
)

func TestTotalAmount(t *testing.T) {
	services := []models.Service{
		{Name: "Corte", Price: 80},
		{Name: "Coloração", Price: 150},
		{Name: "Escova", Price: 60.50},
	}

	assert.Equal(t, 290.50, TotalAmount(services))
	assert.Zero(t, TotalAmount(nil))
}

func TestCancel(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}

	Cancel(ap, "cliente desmarcou")

	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, "cliente desmarcou", ap.CancellationReason)
}

func TestStartAt(t *testing.T) {
	ap := models.Appointment{
		Date:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "14:30",
	}

	assert.Equal(t, time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC), StartAt(ap))
}

func TestStatusValidation(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled} {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus(Status("pending")))

	assert.Equal(t, StatusScheduled, InitialStatus())
	assert.Equal(t, []Status{StatusScheduled, StatusConfirmed}, ActiveStatuses)
}
