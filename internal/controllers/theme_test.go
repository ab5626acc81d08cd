package controllers

import (
	"testing"

	"github.com/amaumene/cinedeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeDefaultsToDark(t *testing.T) {
	ctrl := NewThemeController(models.NewMemoryStore(), testLogger())
	assert.Equal(t, models.ThemeDark, ctrl.Mode())
}

func TestThemeToggleAndRestore(t *testing.T) {
	store := models.NewMemoryStore()
	ctrl := NewThemeController(store, testLogger())

	mode, err := ctrl.Toggle()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, mode)

	raw, err := store.Get(models.KeyThemeMode)
	require.NoError(t, err)
	assert.Equal(t, "light", string(raw))

	restored := NewThemeController(store, testLogger())
	assert.Equal(t, models.ThemeLight, restored.Mode())

	mode, err = restored.Toggle()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, mode)
}

func TestThemeSet(t *testing.T) {
	ctrl := NewThemeController(models.NewMemoryStore(), testLogger())

	require.NoError(t, ctrl.Set(models.ThemeLight))
	assert.Equal(t, models.ThemeLight, ctrl.Mode())

	assert.ErrorIs(t, ctrl.Set("sepia"), ErrInvalidTheme)
	assert.Equal(t, models.ThemeLight, ctrl.Mode())
}

func TestThemeUnknownStoredValue(t *testing.T) {
	store := models.NewMemoryStore()
	require.NoError(t, store.Set(models.KeyThemeMode, []byte("sepia")))

	ctrl := NewThemeController(store, testLogger())
	assert.Equal(t, models.ThemeDark, ctrl.Mode())
}

func TestThemePersistFailure(t *testing.T) {
	ctrl := NewThemeController(brokenStore{models.NewMemoryStore()}, testLogger())

	mode, err := ctrl.Toggle()
	assert.ErrorIs(t, err, errBrokenStore)
	assert.Equal(t, models.ThemeDark, mode)
	assert.Equal(t, models.ThemeDark, ctrl.Mode())
}
