package usecase

import (
	"context"
	"sync"
	"time"

	xhttp "CoinPulse/pkg/http"
	"CoinPulse/pkg/logger"
)

// DefaultProbeInterval is the minimum spacing between probe rounds.
const DefaultProbeInterval = 5 * time.Minute

// ProbeTarget is one collaborator health endpoint.
type ProbeTarget struct {
	Name string
	URL  string
}

// ReadinessProber tracks whether the remote collaborators answer their
// health endpoints. State is scoped to the prober instance. A round runs
// at most once per interval and never concurrently; callers arriving
// early or during a round get the last known statuses.
type ReadinessProber struct {
	client   *xhttp.Client
	targets  []ProbeTarget
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time

	mu          sync.Mutex
	probing     bool
	lastAttempt time.Time
	statuses    map[string]bool
}

// NewReadinessProber creates a prober over the given targets.
func NewReadinessProber(targets []ProbeTarget, timeout time.Duration, log *logger.Logger) *ReadinessProber {
	return &ReadinessProber{
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
		targets:  targets,
		interval: DefaultProbeInterval,
		log:      log,
		now:      time.Now,
		statuses: make(map[string]bool, len(targets)),
	}
}

// Probe returns per-target health. It runs a fresh round only when the
// previous one is at least the interval old and no round is in flight.
func (p *ReadinessProber) Probe(ctx context.Context) map[string]bool {
	p.mu.Lock()
	if p.probing || (!p.lastAttempt.IsZero() && p.now().Sub(p.lastAttempt) < p.interval) {
		snapshot := p.snapshotLocked()
		p.mu.Unlock()
		return snapshot
	}
	p.probing = true
	p.lastAttempt = p.now()
	p.mu.Unlock()

	results := make(map[string]bool, len(p.targets))
	var wg sync.WaitGroup
	var rmu sync.Mutex
	for _, t := range p.targets {
		wg.Add(1)
		go func(t ProbeTarget) {
			defer wg.Done()
			ok := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
				Method: xhttp.MethodGet,
				URL:    t.URL,
			}, nil) == nil
			rmu.Lock()
			results[t.Name] = ok
			rmu.Unlock()
			if !ok {
				p.log.Warn("collaborator not ready", logger.String("target", t.Name))
			}
		}(t)
	}
	wg.Wait()

	p.mu.Lock()
	for name, ok := range results {
		p.statuses[name] = ok
	}
	p.probing = false
	snapshot := p.snapshotLocked()
	p.mu.Unlock()
	return snapshot
}

// Ready reports whether every target answered its last probe.
func (p *ReadinessProber) Ready(ctx context.Context) bool {
	statuses := p.Probe(ctx)
	if len(statuses) < len(p.targets) {
		return false
	}
	for _, ok := range statuses {
		if !ok {
			return false
		}
	}
	return true
}

func (p *ReadinessProber) snapshotLocked() map[string]bool {
	out := make(map[string]bool, len(p.statuses))
	for k, v := range p.statuses {
		out[k] = v
	}
	return out
}
