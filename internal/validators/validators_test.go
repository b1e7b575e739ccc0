package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "14:05", "23:59"}
	for _, s := range valid {
		assert.True(t, IsTimeOfDay(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "9:30", "24:00", "12:60", "12.30", "ab:cd", "12:3", "012:30"}
	for _, s := range invalid {
		assert.False(t, IsTimeOfDay(s), "expected %q to be invalid", s)
	}
}
