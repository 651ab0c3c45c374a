package store

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestHistory_RecordAndGet(t *testing.T) {
	h := openTestHistory(t)
	h.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	in := map[string]string{"principal": "100000", "rate": "12", "years": "1"}
	out := map[string]string{"emi": "8884.88"}
	e, err := h.Record("emi", "EMI 8,884.88", in, out)
	require.NoError(t, err)

	_, err = uuid.Parse(e.ID)
	assert.NoError(t, err, "entry ids are UUIDs")

	got, err := h.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "emi", got.Kind)
	assert.Equal(t, "EMI 8,884.88", got.Summary)
	assert.True(t, got.CreatedAt.Equal(e.CreatedAt))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(got.Result, &decoded))
	assert.Equal(t, "8884.88", decoded["emi"])
}

func TestHistory_RecentNewestFirst(t *testing.T) {
	h := openTestHistory(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, kind := range []string{"tax", "sip", "goal"} {
		at := base.Add(time.Duration(i) * time.Hour)
		h.now = func() time.Time { return at }
		_, err := h.Record(kind, kind, nil, nil)
		require.NoError(t, err)
	}

	entries, err := h.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "goal", entries[0].Kind)
	assert.Equal(t, "sip", entries[1].Kind)

	all, err := h.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHistory_GetMissing(t *testing.T) {
	h := openTestHistory(t)
	_, err := h.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistory_Clear(t *testing.T) {
	h := openTestHistory(t)
	_, err := h.Record("emergency", "fund", 1, 2)
	require.NoError(t, err)

	n, err := h.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	entries, err := h.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_ReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	h, err := Open(path)
	require.NoError(t, err)
	_, err = h.Record("allocate", "moderate 10y", nil, nil)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	h, err = Open(path)
	require.NoError(t, err)
	defer h.Close()

	entries, err := h.Recent(5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "allocate", entries[0].Kind)
}
