package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_RecordAndEntries(t *testing.T) {
	l := NewLog()
	assert.NotEmpty(t, l.SessionID())

	e1 := l.Record("qa", "what is the policy?", "3 days per week")
	e2 := l.Record("copy", "Widget Pro", "Buy it now")

	assert.NotEmpty(t, e1.ID)
	assert.NotEqual(t, e1.ID, e2.ID)
	assert.False(t, e1.Timestamp.IsZero())

	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "qa", entries[0].Feature)
	assert.Equal(t, "copy", entries[1].Feature)
}

func TestLog_Stats(t *testing.T) {
	l := NewLog()
	l.Record("qa", "a", "b")
	l.Record("qa", "c", "d")
	l.Record("report", "e", "f")

	s := l.Stats()
	assert.Equal(t, l.SessionID(), s.SessionID)
	assert.Equal(t, 3, s.Entries)
	assert.Equal(t, map[string]int{"qa": 2, "report": 1}, s.ByFeature)
}

func TestLog_Export(t *testing.T) {
	l := NewLog()
	l.Record("qa", "question", "answer")

	var buf bytes.Buffer
	require.NoError(t, l.Export(&buf))

	var doc struct {
		Stats   Stats   `json:"stats"`
		Entries []Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 1, doc.Stats.Entries)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "question", doc.Entries[0].Input)
}

func TestLog_ExportFile(t *testing.T) {
	l := NewLog()
	l.Record("qa", "q", "a")

	path := filepath.Join(t.TempDir(), "sessions", "log.json")
	require.NoError(t, l.ExportFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), l.SessionID())
}

func TestLog_EntriesSnapshotIsCopy(t *testing.T) {
	l := NewLog()
	l.Record("qa", "q", "a")

	snapshot := l.Entries()
	snapshot[0].Output = "mutated"
	assert.Equal(t, "a", l.Entries()[0].Output)
}
