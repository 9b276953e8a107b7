package service

import (
	"sync"
	"time"

	"github.com/drivefetch/drivefetch/internal/app/model"
)

// Notifier keeps the single transient status message per session and drives
// its two-phase dismissal: a display window while the message is fully
// visible, then a short fade tail after which the message is cleared.
//
// Showing a new message cancels any pending dismissal and restarts the
// sequence, so at most one message is ever visible per session and at most
// one dismissal timer is pending.
type Notifier struct {
	displayWindow time.Duration
	fadeDelay     time.Duration

	mu       sync.Mutex
	sessions map[string]*statusEntry
}

type statusEntry struct {
	status     model.Status
	dismissing bool
	timer      *time.Timer
	gen        uint64
}

// NewNotifier creates a notifier with the given display window and fade tail.
func NewNotifier(displayWindow, fadeDelay time.Duration) *Notifier {
	return &Notifier{
		displayWindow: displayWindow,
		fadeDelay:     fadeDelay,
		sessions:      make(map[string]*statusEntry),
	}
}

// Show replaces the session's current message and schedules its dismissal.
func (n *Notifier) Show(sessionID, message string, severity model.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry := n.sessions[sessionID]
	if entry == nil {
		entry = &statusEntry{}
		n.sessions[sessionID] = entry
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}

	entry.gen++
	entry.status = model.Status{Message: message, Severity: severity}
	entry.dismissing = false

	gen := entry.gen
	entry.timer = time.AfterFunc(n.displayWindow, func() {
		n.beginDismiss(sessionID, gen)
	})
}

// Clear drops the session's message immediately, cancelling pending timers.
func (n *Notifier) Clear(sessionID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry := n.sessions[sessionID]
	if entry == nil {
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	delete(n.sessions, sessionID)
}

// Status returns the session's current message and whether it is fading out.
// An empty status means nothing is visible.
func (n *Notifier) Status(sessionID string) (model.Status, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry := n.sessions[sessionID]
	if entry == nil {
		return model.Status{}, false
	}
	return entry.status, entry.dismissing
}

func (n *Notifier) beginDismiss(sessionID string, gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry := n.sessions[sessionID]
	if entry == nil || entry.gen != gen {
		// Superseded by a newer Show or an explicit Clear.
		return
	}

	entry.dismissing = true
	entry.timer = time.AfterFunc(n.fadeDelay, func() {
		n.finishDismiss(sessionID, gen)
	})
}

func (n *Notifier) finishDismiss(sessionID string, gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry := n.sessions[sessionID]
	if entry == nil || entry.gen != gen {
		return
	}
	delete(n.sessions, sessionID)
}
