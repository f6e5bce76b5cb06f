package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	pubs []Snapshot
	done []Snapshot
}

func (r *recorder) Publish(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pubs = append(r.pubs, s)
}

func (r *recorder) Done(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = append(r.done, s)
}

func TestTrackerConcurrentAdvance(t *testing.T) {
	const files = 128
	rec := &recorder{}
	tr := NewTracker(rec)
	tr.Stage(StageHighlight, files)

	var wg sync.WaitGroup
	wg.Add(files)
	for i := 0; i < files; i++ {
		go func() {
			defer wg.Done()
			tr.Advance(2)
		}()
	}
	wg.Wait()
	tr.Done()

	snap := tr.Snapshot()
	assert.Equal(t, files, snap.Done)
	assert.Equal(t, 2*files, snap.Highlights)
	require.Len(t, rec.done, 1)
	assert.Equal(t, files, rec.done[0].Done)

	final := false
	for _, s := range rec.pubs {
		final = final || s.Done == files
	}
	assert.True(t, final, "the final file always publishes")
}

func TestTrackerStageResetsCounts(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec)
	tr.Stage(StageList, -1)
	tr.Advance(0)
	tr.Stage(StageHighlight, 3)

	snap := tr.Snapshot()
	assert.Equal(t, StageHighlight, snap.Stage)
	assert.Equal(t, 0, snap.Done)
	assert.Equal(t, 3, snap.Total)
	assert.True(t, snap.Warmup)
}

func TestNilObserverIsNoop(t *testing.T) {
	tr := NewTracker(nil)
	assert.NotPanics(t, func() {
		tr.Stage(StageHighlight, 1)
		tr.Advance(1)
		tr.Done()
	})
	var nilTracker *Tracker
	assert.NotPanics(t, func() { nilTracker.Advance(1) })
}

func TestRender(t *testing.T) {
	assert.Equal(t, "[list] ...", render(Snapshot{Stage: StageList, Total: -1}))
	got := render(Snapshot{Stage: StageHighlight, Total: 4, Done: 1, Highlights: 3, Warmup: true})
	assert.Equal(t, "[highlight]  25% 1/4 files, 3 highlights --/s ETA --:--:--", got)

	got = render(Snapshot{Stage: StageHighlight, Total: 10, Done: 5, Rate: 2.5, ETA: 2 * time.Second})
	assert.Contains(t, got, "2.5/s ETA 00:00:02")
}

func TestPercentClamps(t *testing.T) {
	assert.Equal(t, 100, percent(5, 4))
	assert.Equal(t, 0, percent(0, 0))
	assert.Equal(t, 100, percent(1, 0))
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(zerolog.New(&buf))
	obs.Publish(Snapshot{Stage: StageHighlight, Total: 2, Done: 1, Highlights: 4})
	obs.Done(Snapshot{Done: 2, Highlights: 4})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"stage":"highlight"`)
	assert.Contains(t, lines[0], `"message":"progress"`)
	assert.Contains(t, lines[1], `"highlights":4`)
}

func TestAutoObserverFallsBackToLog(t *testing.T) {
	var buf bytes.Buffer
	_, ok := NewAutoObserver(&buf, zerolog.Nop()).(logObserver)
	assert.True(t, ok)
}
