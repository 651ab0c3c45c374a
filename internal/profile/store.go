// Package profile persists the user profile as a JSON document.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rgehrsitz/pfgo/internal/domain"
)

// ErrCorrupt is returned alongside a default profile when the file exists but
// cannot be decoded.
var ErrCorrupt = errors.New("profile file is corrupt")

// Store reads and writes a single profile file.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the profile. A missing file yields a default profile and no
// error; an unreadable or corrupt file yields a default profile and an error
// the caller may treat as a warning.
func (s *Store) Load() (domain.UserProfile, error) {
	p := domain.NewUserProfile(s.now())

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("reading profile: %w", err)
	}

	loaded := p
	if err := json.Unmarshal(b, &loaded); err != nil {
		return p, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return normalize(loaded), nil
}

// Save writes the profile via a temp file then rename.
func (s *Store) Save(p domain.UserProfile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating profile dir: %w", err)
	}

	b, err := json.MarshalIndent(normalize(p), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

func normalize(p domain.UserProfile) domain.UserProfile {
	if p.Name == "" {
		p.Name = domain.DefaultProfileName
	}
	if p.EmergencyMonths < 0 {
		p.EmergencyMonths = domain.DefaultEmergencyMonths
	}
	p.Risk = domain.NormalizeRiskCategory(string(p.Risk))
	if p.RegimePreference != nil {
		r := domain.NormalizeRegime(string(*p.RegimePreference))
		p.RegimePreference = &r
	}
	return p
}
