package shadow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStampedNotSeenUntilSet(t *testing.T) {
	var s Stamped[int]
	_, ok := s.Get()
	assert.False(t, ok)
	assert.False(t, s.Seen())

	s.Set(42, time.Now())
	v, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.True(t, s.Seen())
}

func TestStampedWithin(t *testing.T) {
	var s Stamped[byte]
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Set(0x04, base)

	assert.True(t, s.Within(base.Add(500*time.Millisecond), 2*time.Second))
	assert.False(t, s.Within(base.Add(3*time.Second), 2*time.Second))

	var unset Stamped[byte]
	assert.False(t, unset.Within(base, 2*time.Second))
}
