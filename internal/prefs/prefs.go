package prefs

import (
	"context"
	"errors"

	"github.com/marcosovalle/shopfront-backend/internal/collections"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/kv"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
)

// Theme values the storefront UI understands.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultTheme applies when a session has never chosen one.
const DefaultTheme = ThemeLight

// Service stores small per-session display preferences. Reads degrade to the
// default on any storage trouble.
type Service interface {
	Theme(ctx context.Context, sessionID string) string
	SetTheme(ctx context.Context, sessionID, theme string) error
}

type service struct {
	store kv.Store
	logg  *logger.Logger
}

func NewService(store kv.Store, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session store is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{store: store, logg: logg}, nil
}

func (s *service) Theme(ctx context.Context, sessionID string) string {
	raw, err := s.store.Get(ctx, kv.SessionKey(sessionID, collections.KeyTheme))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			ctx = s.logg.WithField(ctx, "error", err.Error())
			s.logg.Warn(ctx, "theme read failed, using default")
		}
		return DefaultTheme
	}
	if raw != ThemeLight && raw != ThemeDark {
		return DefaultTheme
	}
	return raw
}

func (s *service) SetTheme(ctx context.Context, sessionID, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return pkgerrors.New(pkgerrors.CodeValidation, "theme must be light or dark")
	}
	if err := s.store.Set(ctx, kv.SessionKey(sessionID, collections.KeyTheme), theme); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist theme")
	}
	return nil
}
