package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmviewer/tmviewer/pkg/settings"
)

func TestOpenMissing(t *testing.T) {
	s := settings.Open(filepath.Join(t.TempDir(), "nope", "settings.json"))
	assert.Equal(t, settings.Settings{}, s.Get())
}

func TestOpenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s := settings.Open(path)
	assert.Equal(t, settings.Settings{}, s.Get())
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.json")
	s := settings.Open(path)

	err := s.Save(settings.Settings{APIKey: " key ", Namespace: "ns", Tag: "t", Lang: "en"})
	require.NoError(t, err)

	reloaded := settings.Open(path)
	assert.Equal(t, settings.Settings{APIKey: "key", Namespace: "ns", Tag: "t", Lang: "en"},
		reloaded.Get())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestUpdateOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := settings.Open(path)
	require.NoError(t, s.Save(settings.Settings{APIKey: "key", Namespace: "ns", Tag: "old"}))

	got, err := s.Update(func(v *settings.Settings) {
		v.Tag = ""
		v.Theme = string(settings.ThemeDark)
	})
	require.NoError(t, err)
	assert.Equal(t, "", got.Tag)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old")
	assert.Contains(t, string(data), `"theme": "dark"`)
}

func TestMemoryOnly(t *testing.T) {
	s := settings.Open("")
	require.NoError(t, s.Save(settings.Settings{Lang: "zh"}))
	assert.Equal(t, "zh", s.Get().Lang)
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, settings.ThemeDark, settings.ParseTheme("dark"))
	assert.Equal(t, settings.ThemeLight, settings.ParseTheme("light"))
	assert.Equal(t, settings.ThemeLight, settings.ParseTheme("neon"))
}
