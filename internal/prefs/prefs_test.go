package prefs

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/kv"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
)

func newTestService(t *testing.T, store kv.Store) Service {
	t.Helper()
	svc, err := NewService(store, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	require.NoError(t, err)
	return svc
}

func TestThemeDefaultsToLight(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	assert.Equal(t, ThemeLight, svc.Theme(context.Background(), "sess-1"))
}

func TestSetThemeRoundTrip(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())

	require.NoError(t, svc.SetTheme(context.Background(), "sess-1", ThemeDark))
	assert.Equal(t, ThemeDark, svc.Theme(context.Background(), "sess-1"))
	assert.Equal(t, ThemeLight, svc.Theme(context.Background(), "sess-2"))
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())

	err := svc.SetTheme(context.Background(), "sess-1", "sepia")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCorruptThemeFallsBackToDefault(t *testing.T) {
	store := kv.NewMemory()
	svc := newTestService(t, store)
	require.NoError(t, store.Set(context.Background(), kv.SessionKey("sess-1", "theme"), "garbage"))

	assert.Equal(t, ThemeLight, svc.Theme(context.Background(), "sess-1"))
}

func TestThemeReadFailureFallsBackToDefault(t *testing.T) {
	store := kv.NewMemory()
	svc := newTestService(t, store)
	store.FailReads = errors.New("redis gone")

	assert.Equal(t, ThemeLight, svc.Theme(context.Background(), "sess-1"))
}
