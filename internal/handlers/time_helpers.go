package handlers

import (
	"time"

	"github.com/mbiancareli/studio-manager/internal/timezone"
)

// business dates arrive as "2006-01-02" strings and are anchored in the
// studio's timezone
func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(""),
	)
}
