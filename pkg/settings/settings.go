// Package settings persists the user supplied API credentials and UI preferences as a flat
// JSON record.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Theme names a UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the Theme named by s, defaulting to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Settings is the persisted record.
type Settings struct {
	APIKey    string `json:"apiKey,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Tag       string `json:"tag,omitempty"`
	Lang      string `json:"lang,omitempty"`
	Theme     string `json:"theme,omitempty"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (s Settings) Trimmed() Settings {
	return Settings{
		APIKey:    strings.TrimSpace(s.APIKey),
		Namespace: strings.TrimSpace(s.Namespace),
		Tag:       strings.TrimSpace(s.Tag),
		Lang:      strings.TrimSpace(s.Lang),
		Theme:     strings.TrimSpace(s.Theme),
	}
}

// Store keeps the current settings in memory and rewrites the backing file on every change.
type Store struct {
	mu   sync.Mutex
	path string
	cur  Settings
}

// Open loads settings from path.  A missing or unreadable file yields empty settings, it is
// never an error.
func Open(path string) *Store {
	s := &Store{path: path}
	s.cur = load(path)
	return s
}

func load(path string) Settings {
	logger := log.With().Str("module", "settings").Str("path", path).Logger()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn().Err(err).Msg("Failed to read settings, using defaults")
		}
		return Settings{}
	}
	var v Settings
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Warn().Err(err).Msg("Ignoring corrupt settings file")
		return Settings{}
	}
	return v.Trimmed()
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the current settings.
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Save replaces the settings and writes them out.  The in-memory copy is updated even when the
// write fails, so the running session keeps working.
func (s *Store) Save(v Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = v.Trimmed()
	return s.write()
}

// Update applies fn to a copy of the current settings and saves the result.
func (s *Store) Update(fn func(*Settings)) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.cur
	fn(&v)
	s.cur = v.Trimmed()
	return s.cur, s.write()
}

// write persists cur, lock must be held.
func (s *Store) write() error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.cur, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("settings dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}
