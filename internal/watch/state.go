package watch

import (
	"sync"
	"time"

	"git.home.luguber.info/inful/sitenav/internal/check"
)

// Status is the outcome of the most recent check run.
type Status struct {
	Result    *check.Result
	Err       error
	UpdatedAt time.Time
	Runs      int
}

// State holds the latest Status. Readers never block each other.
type State struct {
	mu     sync.RWMutex
	status Status
}

// Set records the outcome of a run.
func (s *State) Set(result *check.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = Status{
		Result:    result,
		Err:       err,
		UpdatedAt: time.Now(),
		Runs:      s.status.Runs + 1,
	}
}

// Load returns the latest status. Runs is zero before the first check.
func (s *State) Load() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
