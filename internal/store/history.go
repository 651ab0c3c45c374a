// Package store provides a SQLite-backed log of past calculations.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // register sqlite driver
)

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned by Get when no entry has the given id.
var ErrNotFound = errors.New("history entry not found")

// Entry is one recorded calculation.
type Entry struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Summary   string          `json:"summary"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// History records calculations in SQLite.
type History struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db, now: time.Now}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores a calculation. input and result are encoded as JSON.
func (h *History) Record(kind, summary string, input, result any) (Entry, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding input: %w", err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding result: %w", err)
	}

	e := Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Summary:   summary,
		Input:     in,
		Result:    out,
		CreatedAt: h.now().UTC(),
	}

	_, err = h.db.Exec(`INSERT INTO calculations
		(id, kind, summary, input_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.Summary, string(e.Input), string(e.Result), e.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording %s: %w", kind, err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns every entry.
func (h *History) Recent(limit int) ([]Entry, error) {
	query := `SELECT id, kind, summary, input_json, result_json, created_at
		FROM calculations ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry with the given id.
func (h *History) Get(id string) (Entry, error) {
	row := h.db.QueryRow(`SELECT id, kind, summary, input_json, result_json, created_at
		FROM calculations WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// Clear deletes every entry and returns how many were removed.
func (h *History) Clear() (int64, error) {
	res, err := h.db.Exec("DELETE FROM calculations")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var in, out, created string
	if err := s.Scan(&e.ID, &e.Kind, &e.Summary, &in, &out, &created); err != nil {
		return Entry{}, err
	}
	e.Input = json.RawMessage(in)
	e.Result = json.RawMessage(out)
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing created_at %q: %w", created, err)
	}
	e.CreatedAt = t
	return e, nil
}
