package appointment

import (
	"strconv"
	"strings"
	"time"

	"github.com/mbiancareli/studio-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// TotalAmount sums the price of every referenced service. The result is
// persisted on the appointment and never recomputed retroactively, so the
// booking keeps the price that was valid when it was made.
func TotalAmount(services []models.Service) float64 {
	var total float64
	for _, s := range services {
		total += s.Price
	}
	return total
}

// Cancel soft-cancels an appointment, keeping the record with the reason
// instead of deleting it.
func Cancel(ap *models.Appointment, reason string) {
	ap.Status = string(StatusCancelled)
	ap.CancellationReason = reason
}

// StartAt combines the appointment's day with its "HH:MM" start time.
// The day column stores midnight; clock precision lives in StartTime.
func StartAt(ap models.Appointment) time.Time {
	parts := strings.SplitN(ap.StartTime, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute := 0
	if len(parts) == 2 {
		minute, _ = strconv.Atoi(parts[1])
	}
	d := ap.Date
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}
