package get

import (
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"job-traveler/http-server/response"
	"job-traveler/internal/storage"
	"log/slog"
	"net/http"
	"time"
)

type JobTraveler interface {
	GetJobTraveler(ctx context.Context, jobNumber string) (*storage.Report, error)
}

// GetJobTraveler serves the full traveler of one job: header, annotated
// operations and summary counts.
func GetJobTraveler(log *slog.Logger, traveler JobTraveler, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.job_traveler.GetJobTraveler"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		jobNumber := chi.URLParam(r, "jobNumber")
		if jobNumber == "" {
			http.Error(w, "Missing job number", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		report, err := traveler.GetJobTraveler(ctx, jobNumber)
		if err != nil {
			response.JobError(w, r, log, jobNumber, err, "Failed to fetch job traveler data")
			return
		}

		render.JSON(w, r, report)
	}
}
