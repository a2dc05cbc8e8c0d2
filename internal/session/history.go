package session

import (
	"time"

	"socketCanvas/internal/models"
)

// HistoryStore retains completed-stroke snapshots for a bounded time window.
// The sequence is ordered by creation time ascending, so the oldest entry is
// always the head and eviction is always a head pop.
//
// The scheduler is either idle (no timer, history empty) or armed (exactly one
// one-shot poll timer pending). The timer callback does not touch state; it
// only asks the dispatcher to re-enter CheckExpiry on its own goroutine, which
// keeps every mutation serialized and the at-most-one-timer invariant cheap to
// hold.
type HistoryStore struct {
	retention time.Duration
	poll      time.Duration
	snapshots []models.HistorySnapshot
	timer     *time.Timer
	fire      func()
}

func NewHistoryStore(retention, poll time.Duration) *HistoryStore {
	return &HistoryStore{
		retention: retention,
		poll:      poll,
	}
}

// bind installs the scheduler's re-entry callback. The dispatcher calls this
// once at construction, before any event is processed.
func (h *HistoryStore) bind(fire func()) {
	h.fire = fire
}

// Append pushes a snapshot to the tail. The caller follows up with
// CheckExpiry, which arms the timer if the scheduler was idle.
func (h *HistoryStore) Append(value string, now time.Time) models.HistorySnapshot {
	snapshot := models.HistorySnapshot{
		Time:  now.UnixMilli(),
		Value: value,
	}
	h.snapshots = append(h.snapshots, snapshot)
	return snapshot
}

// CheckExpiry pops every expired head and returns one copy of the remaining
// sequence per eviction, in eviction order; the dispatcher broadcasts each as
// the new canonical history. Afterwards the scheduler is armed if entries
// remain and idle otherwise. Idempotent, safe to call from any trigger site
// on the dispatcher goroutine.
func (h *HistoryStore) CheckExpiry(now time.Time) [][]models.HistorySnapshot {
	var truncations [][]models.HistorySnapshot
	for len(h.snapshots) > 0 && now.UnixMilli()-h.snapshots[0].Time > h.retention.Milliseconds() {
		h.snapshots = h.snapshots[1:]
		truncations = append(truncations, h.Snapshots())
	}

	if len(h.snapshots) == 0 {
		h.disarm()
		return truncations
	}
	h.arm()
	return truncations
}

// TimerFired marks the pending timer as consumed. The dispatcher calls this
// when the scheduled check enters the event loop, before CheckExpiry decides
// whether to re-arm.
func (h *HistoryStore) TimerFired() {
	h.timer = nil
}

// Snapshots returns the retained sequence in creation order.
func (h *HistoryStore) Snapshots() []models.HistorySnapshot {
	out := make([]models.HistorySnapshot, len(h.snapshots))
	copy(out, h.snapshots)
	return out
}

func (h *HistoryStore) Len() int {
	return len(h.snapshots)
}

// Armed reports whether a poll timer is pending.
func (h *HistoryStore) Armed() bool {
	return h.timer != nil
}

// Close cancels any pending timer.
func (h *HistoryStore) Close() {
	h.disarm()
}

func (h *HistoryStore) arm() {
	if h.timer == nil {
		h.timer = time.AfterFunc(h.poll, h.fire)
	}
}

func (h *HistoryStore) disarm() {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}
