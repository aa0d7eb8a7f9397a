// Package history keeps the per-session conversation log.
package history

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is a single recorded interaction.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Feature   string    `json:"feature"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
}

// Stats summarises the session.
type Stats struct {
	SessionID string         `json:"session_id"`
	StartedAt time.Time      `json:"started_at"`
	Entries   int            `json:"entries"`
	ByFeature map[string]int `json:"by_feature"`
}

// Log is an in-memory, concurrency-safe session log. It lives for the
// process lifetime only; Export writes a JSON snapshot for callers who want
// to keep it.
type Log struct {
	mu        sync.RWMutex
	sessionID string
	startedAt time.Time
	entries   []Entry
}

// NewLog starts an empty session log.
func NewLog() *Log {
	return &Log{
		sessionID: uuid.NewString(),
		startedAt: time.Now(),
	}
}

// SessionID returns the session identifier.
func (l *Log) SessionID() string { return l.sessionID }

// Record appends an interaction to the log.
func (l *Log) Record(feature, input, output string) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Feature:   feature,
		Input:     input,
		Output:    output,
	}
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
	return e
}

// Entries returns a snapshot of the recorded interactions in order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Stats summarises the current session.
func (l *Log) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	byFeature := make(map[string]int)
	for _, e := range l.entries {
		byFeature[e.Feature]++
	}
	return Stats{
		SessionID: l.sessionID,
		StartedAt: l.startedAt,
		Entries:   len(l.entries),
		ByFeature: byFeature,
	}
}

type export struct {
	Stats   Stats   `json:"stats"`
	Entries []Entry `json:"entries"`
}

// Export writes the session as indented JSON.
func (l *Log) Export(w io.Writer) error {
	doc := export{Stats: l.Stats(), Entries: l.Entries()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportFile writes the session to a file, creating directories as needed.
func (l *Log) ExportFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return l.Export(f)
}
