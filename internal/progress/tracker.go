// Package progress reports how far a highlight pass has come.
package progress

import (
	"math"
	"sync"
	"time"
)

type Stage string

const (
	StageList      Stage = "list"
	StageHighlight Stage = "highlight"
)

// Snapshot is one progress report. Total is -1 while it is unknown.
type Snapshot struct {
	Stage      Stage         `json:"stage"`
	Total      int           `json:"total"`
	Done       int           `json:"done"`
	Highlights int           `json:"highlights"`
	Rate       float64       `json:"rate_per_sec"`
	ETA        time.Duration `json:"eta"`
	Warmup     bool          `json:"warmup"`
	Elapsed    time.Duration `json:"elapsed"`
}

const (
	defaultAlpha    = 0.2
	defaultInterval = 250 * time.Millisecond
	warmupFiles     = 20
	warmupDuration  = time.Second
)

// Tracker turns per-file completions into throttled Snapshots. It is safe
// for concurrent use; a nil observer makes every call a no-op.
type Tracker struct {
	mu         sync.Mutex
	obs        Observer
	interval   time.Duration
	start      time.Time
	stageStart time.Time
	last       time.Time
	lastNotify time.Time
	stage      Stage
	total      int
	done       int
	highlights int
	ema        float64
}

func NewTracker(obs Observer) *Tracker {
	now := time.Now()
	return &Tracker{obs: obs, interval: defaultInterval, start: now, stageStart: now, last: now, total: -1}
}

// Stage switches to a new stage and restarts the file count and rate.
func (t *Tracker) Stage(stage Stage, total int) {
	if t == nil || t.obs == nil {
		return
	}
	t.mu.Lock()
	now := time.Now()
	t.stage, t.total, t.done, t.ema = stage, total, 0, 0
	t.stageStart, t.last, t.lastNotify = now, now, now
	snap := t.snapshotLocked(now)
	t.mu.Unlock()
	t.obs.Publish(snap)
}

// Advance records one finished file that produced n highlights.
func (t *Tracker) Advance(n int) {
	if t == nil || t.obs == nil {
		return
	}
	t.mu.Lock()
	now := time.Now()
	dt := now.Sub(t.last).Seconds()
	if dt <= 0 {
		dt = 1e-6
	}
	t.done++
	t.highlights += n
	instant := 1 / dt
	if math.IsInf(instant, 0) || math.IsNaN(instant) {
		instant = 0
	}
	if t.ema == 0 {
		t.ema = instant
	} else {
		t.ema = defaultAlpha*instant + (1-defaultAlpha)*t.ema
	}
	t.last = now
	snap := t.snapshotLocked(now)
	notify := now.Sub(t.lastNotify) >= t.interval || snap.Done == snap.Total
	if notify {
		t.lastNotify = now
	}
	t.mu.Unlock()
	if notify {
		t.obs.Publish(snap)
	}
}

func (t *Tracker) Done() {
	if t == nil || t.obs == nil {
		return
	}
	t.mu.Lock()
	snap := t.snapshotLocked(time.Now())
	t.mu.Unlock()
	t.obs.Done(snap)
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked(time.Now())
}

func (t *Tracker) snapshotLocked(now time.Time) Snapshot {
	warm := t.done >= warmupFiles && now.Sub(t.stageStart) >= warmupDuration
	var eta time.Duration
	if warm && t.total > t.done && t.ema > 0 {
		eta = time.Duration(float64(t.total-t.done) / t.ema * float64(time.Second))
	}
	return Snapshot{
		Stage:      t.stage,
		Total:      t.total,
		Done:       t.done,
		Highlights: t.highlights,
		Rate:       t.ema,
		ETA:        eta,
		Warmup:     !warm,
		Elapsed:    now.Sub(t.start),
	}
}
