package memory

import "sync"

// LiveSessions counts open telemetry connections per driver. A driver with at
// least one session reports real positions and is skipped by the simulator.
type LiveSessions struct {
	mu       sync.Mutex
	sessions map[string]int
}

func NewLiveSessions() *LiveSessions {
	return &LiveSessions{sessions: make(map[string]int)}
}

func (l *LiveSessions) Acquire(driverID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions[driverID]++
}

func (l *LiveSessions) Release(driverID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sessions[driverID] <= 1 {
		delete(l.sessions, driverID)
		return
	}
	l.sessions[driverID]--
}

func (l *LiveSessions) IsLive(driverID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sessions[driverID] > 0
}
