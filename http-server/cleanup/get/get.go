package get

import (
	"context"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"job-traveler/http-server/response"
	"job-traveler/internal/service/cleanup"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type CleanupSweeper interface {
	Run(ctx context.Context, jobNumbers []string) (*cleanup.Result, error)
}

// GetCleanup lists setup operations that should be closed across the jobs
// given as ?jobs=a,b,c (the parameter may also be repeated).
func GetCleanup(log *slog.Logger, sweeper CleanupSweeper, maxJobs int, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cleanup.GetCleanup"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var jobs []string
		for _, v := range r.URL.Query()["jobs"] {
			for _, j := range strings.Split(v, ",") {
				if j = strings.TrimSpace(j); j != "" {
					jobs = append(jobs, j)
				}
			}
		}

		if len(jobs) == 0 {
			log.Warn("Missing 'jobs' in query parameters")
			http.Error(w, "Missing required query parameter 'jobs'", http.StatusBadRequest)
			return
		}
		if maxJobs > 0 && len(jobs) > maxJobs {
			http.Error(w, fmt.Sprintf("Too many jobs: %d, limit is %d", len(jobs), maxJobs), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		result, err := sweeper.Run(ctx, jobs)
		if err != nil {
			log.Error("cleanup sweep failed", slog.Int("jobs", len(jobs)), slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error{Error: "Failed to run cleanup sweep", Message: err.Error()})
			return
		}

		render.JSON(w, r, result)
	}
}
