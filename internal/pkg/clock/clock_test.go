package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed_Advance(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	c := NewFixed(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.Add(90*time.Minute), c.Advance(90*time.Minute))
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestDayKey(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	instant := time.Date(2024, 3, 10, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), DayKey(instant, nil))
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), DayKey(instant, jakarta))
}
