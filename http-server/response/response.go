package response

import (
	"errors"
	"github.com/go-chi/render"
	"job-traveler/internal/service/traveler"
	"log/slog"
	"net/http"
)

type Error struct {
	Error     string `json:"error"`
	JobNumber string `json:"jobNumber,omitempty"`
	Message   string `json:"message,omitempty"`
}

// JobError writes 404 for unknown jobs and 500 with the error message for
// everything else.
func JobError(w http.ResponseWriter, r *http.Request, log *slog.Logger, jobNumber string, err error, failure string) {
	if errors.Is(err, traveler.ErrJobNotFound) {
		log.Warn("job not found", slog.String("job", jobNumber))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, Error{Error: "Job not found", JobNumber: jobNumber})
		return
	}

	log.Error(failure, slog.String("job", jobNumber), slog.String("error", err.Error()))
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, Error{Error: failure, Message: err.Error()})
}
