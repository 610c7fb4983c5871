package controllers

import (
	"net/http"

	"github.com/marcosovalle/shopfront-backend/api/responses"
	"github.com/marcosovalle/shopfront-backend/api/validators"
	"github.com/marcosovalle/shopfront-backend/internal/authctx"
	"github.com/marcosovalle/shopfront-backend/internal/upstream"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
)

type loginRequest struct {
	Token string         `json:"token" validate:"required"`
	User  *upstream.User `json:"user"`
}

type authStateResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *upstream.User `json:"user,omitempty"`
}

// AuthLogin binds an upstream-issued token to the session.
func AuthLogin(svc authctx.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var user upstream.User
		if payload.User != nil {
			user = *payload.User
		}

		logged, err := svc.Login(r.Context(), sessionID, payload.Token, user)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, authStateResponse{Authenticated: true, User: &logged})
	}
}

// AuthLogout discards the session's token and cached profile.
func AuthLogout(svc authctx.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Logout(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, authStateResponse{Authenticated: false})
	}
}

// AuthMe reports the session's authentication state and cached profile.
func AuthMe(svc authctx.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, ok := svc.CurrentUser(r.Context(), sessionID)
		if !ok {
			responses.WriteSuccess(w, authStateResponse{Authenticated: false})
			return
		}
		responses.WriteSuccess(w, authStateResponse{Authenticated: true, User: &user})
	}
}

type updateUserRequest struct {
	User upstream.User `json:"user" validate:"required"`
}

// AuthUpdateUser replaces the cached profile.
func AuthUpdateUser(svc authctx.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateUser(r.Context(), sessionID, payload.User); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, authStateResponse{Authenticated: true, User: &payload.User})
	}
}

// AuthRefresh re-validates the token upstream and refreshes the profile.
func AuthRefresh(svc authctx.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.RefreshUser(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, authStateResponse{Authenticated: true, User: &user})
	}
}
