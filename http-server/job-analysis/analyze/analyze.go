package analyze

import (
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"job-traveler/http-server/response"
	"job-traveler/internal/service/analysis"
	"log/slog"
	"net/http"
	"time"
)

type JobAnalyzer interface {
	AnalyzeJob(ctx context.Context, jobNumber string) (*analysis.JobAnalysis, error)
}

// AnalyzeJob builds the traveler and asks the model for a narrative. The
// narrative is returned verbatim next to the traveler data.
func AnalyzeJob(log *slog.Logger, analyzer JobAnalyzer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.job_analysis.AnalyzeJob"

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

		started := time.Now()
		result, err := analyzer.AnalyzeJob(ctx, jobNumber)
		if err != nil {
			response.JobError(w, r, log, jobNumber, err, "Failed to analyze job")
			return
		}

		log.Info("job analyzed",
			slog.String("job", jobNumber),
			slog.Int("response_length", len(result.Analysis)),
			slog.Duration("duration", time.Since(started)),
		)

		render.JSON(w, r, result)
	}
}
