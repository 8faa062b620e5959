package app

import (
	"sync"
	"time"

	"noukie-quiz-service/internal/domain"
)

// PlayProgress is a live snapshot of one session's running tally. It is a
// display feed only; the finish aggregates are always recomputed from the
// stored answer rows.
type PlayProgress struct {
	SessionID   string         `json:"sessionId"`
	Answered    int            `json:"answered"`
	Correct     int            `json:"correct"`
	LastVerdict domain.Verdict `json:"lastVerdict,omitempty"`
	Finished    bool           `json:"finished"`
	Percent     float64        `json:"percent"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ProgressHub fans live progress snapshots out to per-session subscribers.
// Feeds are created on first use and dropped once the last subscriber leaves
// a finished session.
type ProgressHub struct {
	mu    sync.RWMutex
	feeds map[string]*sessionFeed
}

type sessionFeed struct {
	mu          sync.Mutex
	answered    int
	correct     int
	lastVerdict domain.Verdict
	finished    bool
	percent     float64
	updatedAt   time.Time
	subscribers map[chan PlayProgress]struct{}
}

func NewProgressHub() *ProgressHub {
	return &ProgressHub{feeds: make(map[string]*sessionFeed)}
}

// Subscribe returns a channel that receives progress updates for a session,
// starting with the current snapshot. The caller must invoke the returned
// cancel function to avoid leaks.
func (h *ProgressHub) Subscribe(sessionID string) (<-chan PlayProgress, func()) {
	feed := h.feed(sessionID)

	ch := make(chan PlayProgress, 8)

	feed.mu.Lock()
	feed.subscribers[ch] = struct{}{}
	initial := feed.snapshotLocked(sessionID)
	feed.mu.Unlock()

	ch <- initial

	cancel := func() {
		feed.mu.Lock()
		if _, ok := feed.subscribers[ch]; ok {
			delete(feed.subscribers, ch)
			close(ch)
		}
		empty := len(feed.subscribers) == 0
		done := feed.finished
		feed.mu.Unlock()
		if empty && done {
			h.drop(sessionID)
		}
	}
	return ch, cancel
}

// PublishAnswer advances the running tally after one graded submission.
func (h *ProgressHub) PublishAnswer(sessionID string, verdict domain.Verdict, at time.Time) {
	feed := h.feed(sessionID)

	feed.mu.Lock()
	defer feed.mu.Unlock()
	feed.answered++
	if verdict == domain.VerdictCorrect {
		feed.correct++
	}
	feed.lastVerdict = verdict
	feed.updatedAt = at
	feed.broadcastLocked(sessionID)
}

// PublishFinish marks the feed finished with the stored aggregates.
func (h *ProgressHub) PublishFinish(sessionID string, total, correct int, percent float64, at time.Time) {
	feed := h.feed(sessionID)

	feed.mu.Lock()
	defer feed.mu.Unlock()
	feed.answered = total
	feed.correct = correct
	feed.percent = percent
	feed.finished = true
	feed.updatedAt = at
	feed.broadcastLocked(sessionID)
}

func (h *ProgressHub) feed(sessionID string) *sessionFeed {
	h.mu.RLock()
	feed, ok := h.feeds[sessionID]
	h.mu.RUnlock()
	if ok {
		return feed
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if feed, ok := h.feeds[sessionID]; ok {
		return feed
	}
	feed = &sessionFeed{subscribers: make(map[chan PlayProgress]struct{})}
	h.feeds[sessionID] = feed
	return feed
}

func (h *ProgressHub) drop(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.feeds, sessionID)
}

func (f *sessionFeed) broadcastLocked(sessionID string) {
	snapshot := f.snapshotLocked(sessionID)
	for ch := range f.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Slow subscriber: discard its oldest snapshot so broadcast
			// never blocks the answering path.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

func (f *sessionFeed) snapshotLocked(sessionID string) PlayProgress {
	return PlayProgress{
		SessionID:   sessionID,
		Answered:    f.answered,
		Correct:     f.correct,
		LastVerdict: f.lastVerdict,
		Finished:    f.finished,
		Percent:     f.percent,
		UpdatedAt:   f.updatedAt,
	}
}
