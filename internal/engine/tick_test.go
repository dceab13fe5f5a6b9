package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimDate(t *testing.T) {
	assert.Equal(t, time.Date(1836, time.January, 1, 0, 0, 0, 0, time.UTC), SimDate(0))
	assert.Equal(t, time.Date(1836, time.February, 1, 0, 0, 0, 0, time.UTC), SimDate(31))
	assert.Equal(t, time.Date(1837, time.January, 1, 0, 0, 0, 0, time.UTC), SimDate(366))
}

func TestClockSpeedBounds(t *testing.T) {
	s, _ := newBareSim(t)
	c := NewClock(s)

	assert.Equal(t, 1.0, c.Speed)
	assert.Equal(t, time.Second, c.Interval)
	assert.False(t, c.Running)
}
