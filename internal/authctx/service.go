package authctx

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/marcosovalle/shopfront-backend/internal/collections"
	"github.com/marcosovalle/shopfront-backend/internal/upstream"
	"github.com/marcosovalle/shopfront-backend/pkg/config"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/kv"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
	"github.com/marcosovalle/shopfront-backend/pkg/token"
)

// profileSource is the slice of the upstream client the auth context needs.
type profileSource interface {
	ValidateToken(ctx context.Context, token string) (bool, error)
	GetProfile(ctx context.Context, token string) (upstream.User, error)
}

// Service keeps the per-session authentication state: the bearer token issued
// by the upstream auth API and a cached copy of the user profile. The token is
// re-verified locally on every read, so an expired session flips back to
// anonymous without an upstream call.
type Service interface {
	Login(ctx context.Context, sessionID, bearer string, user upstream.User) (upstream.User, error)
	Logout(ctx context.Context, sessionID string) error
	IsAuthenticated(ctx context.Context, sessionID string) bool
	CurrentUser(ctx context.Context, sessionID string) (upstream.User, bool)
	Token(ctx context.Context, sessionID string) (string, bool)
	UpdateUser(ctx context.Context, sessionID string, user upstream.User) error
	RefreshUser(ctx context.Context, sessionID string) (upstream.User, error)
}

type service struct {
	store   kv.Store
	jwt     config.JWTConfig
	profile profileSource
	logg    *logger.Logger
}

// NewService wires the auth context over the session store and upstream client.
func NewService(store kv.Store, jwt config.JWTConfig, profile profileSource, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session store is required")
	}
	if jwt.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "jwt secret is required")
	}
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile source is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{store: store, jwt: jwt, profile: profile, logg: logg}, nil
}

// Login verifies the bearer token and persists it alongside the user profile.
// When the caller has no profile in hand it is fetched from upstream; if that
// fetch fails the login still succeeds with a profile built from the claims.
func (s *service) Login(ctx context.Context, sessionID, bearer string, user upstream.User) (upstream.User, error) {
	claims, err := token.Parse(s.jwt, bearer)
	if err != nil {
		return upstream.User{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}

	if user.ID == "" {
		fetched, err := s.profile.GetProfile(ctx, bearer)
		if err != nil {
			s.warn(ctx, sessionID, "profile fetch failed, falling back to claims", err)
			fetched = upstream.User{ID: claims.UserID, Email: claims.Email}
		}
		user = fetched
	}

	if err := s.store.Set(ctx, kv.SessionKey(sessionID, collections.KeyAuthToken), bearer); err != nil {
		return upstream.User{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist token")
	}
	if err := s.writeUser(ctx, sessionID, user); err != nil {
		return upstream.User{}, err
	}
	return user, nil
}

// Logout discards the stored token and profile. Logging out an anonymous
// session is a no-op, not an error.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	err := s.store.Del(ctx,
		kv.SessionKey(sessionID, collections.KeyAuthToken),
		kv.SessionKey(sessionID, collections.KeyUserData),
	)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "discard auth state")
	}
	return nil
}

// IsAuthenticated reports whether the session holds a token that still
// verifies locally. Storage failures degrade to anonymous.
func (s *service) IsAuthenticated(ctx context.Context, sessionID string) bool {
	_, ok := s.Token(ctx, sessionID)
	return ok
}

// Token returns the stored bearer token when present and still valid.
func (s *service) Token(ctx context.Context, sessionID string) (string, bool) {
	raw, err := s.store.Get(ctx, kv.SessionKey(sessionID, collections.KeyAuthToken))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.warn(ctx, sessionID, "token read failed, treating as anonymous", err)
		}
		return "", false
	}
	if _, err := token.Parse(s.jwt, raw); err != nil {
		return "", false
	}
	return raw, true
}

// CurrentUser returns the cached profile for an authenticated session.
func (s *service) CurrentUser(ctx context.Context, sessionID string) (upstream.User, bool) {
	if !s.IsAuthenticated(ctx, sessionID) {
		return upstream.User{}, false
	}
	raw, err := s.store.Get(ctx, kv.SessionKey(sessionID, collections.KeyUserData))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.warn(ctx, sessionID, "user data read failed", err)
		}
		return upstream.User{}, false
	}
	var user upstream.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.warn(ctx, sessionID, "user data malformed, ignoring", err)
		return upstream.User{}, false
	}
	return user, true
}

// UpdateUser replaces the cached profile for an authenticated session.
func (s *service) UpdateUser(ctx context.Context, sessionID string, user upstream.User) error {
	if !s.IsAuthenticated(ctx, sessionID) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not authenticated")
	}
	if user.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.writeUser(ctx, sessionID, user)
}

// RefreshUser re-validates the token upstream and refreshes the cached
// profile. An upstream rejection logs the session out.
func (s *service) RefreshUser(ctx context.Context, sessionID string) (upstream.User, error) {
	bearer, ok := s.Token(ctx, sessionID)
	if !ok {
		return upstream.User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not authenticated")
	}

	valid, err := s.profile.ValidateToken(ctx, bearer)
	if err != nil {
		return upstream.User{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate token")
	}
	if !valid {
		if err := s.Logout(ctx, sessionID); err != nil {
			s.warn(ctx, sessionID, "logout after token rejection failed", err)
		}
		return upstream.User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "token rejected upstream")
	}

	user, err := s.profile.GetProfile(ctx, bearer)
	if err != nil {
		return upstream.User{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch profile")
	}
	if err := s.writeUser(ctx, sessionID, user); err != nil {
		return upstream.User{}, err
	}
	return user, nil
}

func (s *service) writeUser(ctx context.Context, sessionID string, user upstream.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode user data")
	}
	if err := s.store.Set(ctx, kv.SessionKey(sessionID, collections.KeyUserData), string(payload)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist user data")
	}
	return nil
}

func (s *service) warn(ctx context.Context, sessionID, msg string, err error) {
	ctx = s.logg.WithSessionID(ctx, sessionID)
	ctx = s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(ctx, msg)
}
