package export

import (
	"context"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"job-traveler/http-server/response"
	"log/slog"
	"net/http"
	"regexp"
	"time"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type ExcelGenerator interface {
	GenerateExcel(ctx context.Context, jobNumber string) ([]byte, error)
}

func ExportJobTravelerExcel(log *slog.Logger, gen ExcelGenerator, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.job_traveler.ExportJobTravelerExcel"

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

		excelBytes, err := gen.GenerateExcel(ctx, jobNumber)
		if err != nil {
			response.JobError(w, r, log, jobNumber, err, "Failed to generate job traveler excel")
			return
		}

		fileName := fmt.Sprintf("Traveler_%s_%s.xlsx",
			unsafeFileChars.ReplaceAllString(jobNumber, "_"),
			time.Now().Format("2006-01-02_150405"),
		)

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("failed to write excel response", slog.String("error", err.Error()))
		}
	}
}
