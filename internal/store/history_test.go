package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCheckIn(t *testing.T) {
	s := New()
	require.NoError(t, s.SetAreaScore("Health", 10))
	require.NoError(t, s.SetAreaScore("Career", 0))

	entry := s.RecordCheckIn()

	assert.False(t, entry.At.IsZero())
	assert.Equal(t, 10, entry.Scores["Health"])
	assert.Equal(t, 0, entry.Scores["Career"])
	// Eight areas at the default 5, plus 10 and 0.
	assert.InDelta(t, 5.0, entry.Average, 1e-9)

	// The recorded scores are a copy: later edits don't rewrite history.
	require.NoError(t, s.SetAreaScore("Health", 1))
	got := s.CheckIns()
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].Scores["Health"])
}

func TestCheckInHistoryCap(t *testing.T) {
	s := New()
	for i := 0; i < checkInLimit+5; i++ {
		rating := i % (RatingMax + 1)
		require.NoError(t, s.SetAreaScore("Health", rating))
		s.RecordCheckIn()
	}

	got := s.CheckIns()
	require.Len(t, got, checkInLimit, "history keeps only the most recent entries")

	// The oldest surviving entry is the sixth one recorded.
	assert.Equal(t, 5, got[0].Scores["Health"])
	assert.Equal(t, (checkInLimit+4)%(RatingMax+1), got[len(got)-1].Scores["Health"])
}

func TestClearCheckIns(t *testing.T) {
	s := New()
	s.RecordCheckIn()
	s.RecordCheckIn()
	require.Len(t, s.CheckIns(), 2)

	s.ClearCheckIns()
	assert.Empty(t, s.CheckIns())
}

func TestPutCheckIn(t *testing.T) {
	s := New()
	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	s.PutCheckIn(CheckIn{At: at, Scores: map[string]int{"Health": 7}, Average: 7})

	got := s.CheckIns()
	require.Len(t, got, 1)
	assert.True(t, got[0].At.Equal(at), "restored timestamp preserved")
	assert.Equal(t, 7, got[0].Scores["Health"])
}
