package health

import (
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Database  string    `json:"database"`
}

// Health always answers 200; database reachability is reported in the body.
func Health(log *slog.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.Health"

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		database := "Connected"
		if err := db.Ping(ctx); err != nil {
			log.With(slog.String("op", op)).Warn("database ping failed", slog.String("error", err.Error()))
			database = "Disconnected"
		}

		render.JSON(w, r, Response{
			Status:    "OK",
			Timestamp: time.Now().UTC(),
			Service:   "JobAI API",
			Database:  database,
		})
	}
}
