package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/marcosovalle/shopfront-backend/api/responses"
	"github.com/marcosovalle/shopfront-backend/pkg/config"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
)

const envHeader = "X-Shopfront-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the session store answers before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, store pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if store != nil {
			if err := store.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session store unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
