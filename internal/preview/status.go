package preview

import (
	"sync"
	"time"
)

// buildStatus tracks the outcome of the latest build for the health endpoint.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	lastBuild    time.Time
	builds       int
	hasGoodBuild bool
}

func (bs *buildStatus) record(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
	bs.lastBuild = time.Now()
	bs.builds++
	if err == nil {
		bs.hasGoodBuild = true
	}
}

// Health is the JSON body of /healthz.
type Health struct {
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	Builds       int       `json:"builds"`
	LastBuild    time.Time `json:"last_build,omitzero"`
	HasGoodBuild bool      `json:"has_good_build"`
}

func (bs *buildStatus) snapshot() Health {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	h := Health{Status: "ok", Builds: bs.builds, LastBuild: bs.lastBuild, HasGoodBuild: bs.hasGoodBuild}
	switch {
	case bs.lastError != nil:
		h.Status = "error"
		h.Error = bs.lastError.Error()
	case bs.builds == 0:
		h.Status = "starting"
	}
	return h
}
