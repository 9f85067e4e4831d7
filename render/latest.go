package render

import (
	"sync"

	"github.com/spektr-org/launchdash/engine"
)

// Latest is an engine.Renderer that keeps the newest spec of each chart.
// A spec whose Revision is not above the one already held is discarded, so a
// slow, superseded computation can never overwrite a fresher chart.
type Latest struct {
	mu      sync.RWMutex
	specs   map[engine.ChartKind]engine.ChartSpec
	dropped int
	notify  func(engine.ChartSpec)
}

// NewLatest returns an empty sink. notify, when given, is called with each
// accepted spec after it is stored.
func NewLatest(notify ...func(engine.ChartSpec)) *Latest {
	l := &Latest{specs: make(map[engine.ChartKind]engine.ChartSpec)}
	if len(notify) > 0 {
		l.notify = notify[0]
	}
	return l
}

// Render stores spec unless a newer revision of the same chart is held.
func (l *Latest) Render(spec engine.ChartSpec) {
	l.mu.Lock()
	if cur, ok := l.specs[spec.Kind]; ok && spec.Revision <= cur.Revision {
		l.dropped++
		l.mu.Unlock()
		return
	}
	l.specs[spec.Kind] = spec
	l.mu.Unlock()

	if l.notify != nil {
		l.notify(spec)
	}
}

// Get returns the newest spec for kind.
func (l *Latest) Get(kind engine.ChartKind) (engine.ChartSpec, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	spec, ok := l.specs[kind]
	return spec, ok
}

// Dropped returns how many stale specs were discarded.
func (l *Latest) Dropped() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dropped
}
