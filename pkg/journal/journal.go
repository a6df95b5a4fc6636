// Package journal records every spoken announcement of a session and can
// export the transcript to a Google Doc for later review (orientation and
// mobility trainers ask for exactly this).
package journal

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/waypath/go-waypath/pkg/announce"
	"github.com/waypath/go-waypath/pkg/speech"
)

// Entry is one spoken announcement.
type Entry struct {
	Time time.Time
	Tier speech.Tier
	Text string
}

// Journal accumulates a session's announcements.
type Journal struct {
	clock announce.Clock

	mu      sync.Mutex
	session string
	started time.Time
	entries []Entry
}

// New creates a journal for the given session ID.
func New(session string, clock announce.Clock) *Journal {
	if clock == nil {
		clock = announce.SystemClock{}
	}
	return &Journal{
		clock:   clock,
		session: session,
		started: clock.Now(),
	}
}

// Record appends one announcement. Safe for concurrent use; intended as a
// Guide.OnAnnouncement hook.
func (j *Journal) Record(text string, tier speech.Tier) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, Entry{Time: j.clock.Now(), Tier: tier, Text: text})
}

// Entries returns a copy of the recorded announcements.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of recorded announcements.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// Reset drops all entries and restarts the session clock.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
	j.started = j.clock.Now()
}

// Transcript renders the session as plain text, one line per announcement
// with its offset from session start.
func (j *Journal) Transcript() string {
	j.mu.Lock()
	defer j.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Navigation session %s\n", j.session)
	fmt.Fprintf(&b, "Started: %s\n\n", j.started.Format(time.RFC1123))
	for _, e := range j.entries {
		offset := e.Time.Sub(j.started).Round(100 * time.Millisecond)
		fmt.Fprintf(&b, "[%8s] %-11s %s\n", offset, e.Tier, e.Text)
	}
	return b.String()
}

// Export creates a Google Doc holding the transcript and returns its
// document ID.
func (j *Journal) Export(client *DocsClient) (string, error) {
	j.mu.Lock()
	session := j.session
	started := j.started
	j.mu.Unlock()

	title := fmt.Sprintf("Navigation session %s (%s)", session, started.Format("Jan 2 15:04"))
	return client.CreateDoc(title, j.Transcript())
}
