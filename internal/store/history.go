package store

import (
	"time"
)

// checkInLimit caps history at a year of monthly check-ins.
const checkInLimit = 12

// CheckIn freezes the life-wheel ratings at one point in time for progress
// tracking within the session.
type CheckIn struct {
	At      time.Time      `json:"at"`
	Scores  map[string]int `json:"scores"`
	Average float64        `json:"average"`
}

// RecordCheckIn appends a check-in with a copy of the current ratings. Only
// the most recent checkInLimit entries are kept.
func (s *Store) RecordCheckIn() CheckIn {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := 0
	for _, score := range s.areaScores {
		sum += score
	}
	avg := 0.0
	if len(s.areaScores) > 0 {
		avg = float64(sum) / float64(len(s.areaScores))
	}

	entry := CheckIn{
		At:      time.Now(),
		Scores:  copyIntMap(s.areaScores),
		Average: avg,
	}
	s.checkIns = append(s.checkIns, entry)
	if len(s.checkIns) > checkInLimit {
		s.checkIns = s.checkIns[len(s.checkIns)-checkInLimit:]
	}
	return entry
}

// PutCheckIn inserts a historical check-in as-is. Used when rebuilding a
// session from an exported record; the cap still applies.
func (s *Store) PutCheckIn(entry CheckIn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Scores = copyIntMap(entry.Scores)
	s.checkIns = append(s.checkIns, entry)
	if len(s.checkIns) > checkInLimit {
		s.checkIns = s.checkIns[len(s.checkIns)-checkInLimit:]
	}
}

// CheckIns returns a copy of the history, oldest first.
func (s *Store) CheckIns() []CheckIn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCheckIns(s.checkIns)
}

// ClearCheckIns wipes the history.
func (s *Store) ClearCheckIns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkIns = nil
}
