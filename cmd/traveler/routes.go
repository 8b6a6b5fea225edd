package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	getcleanup "job-traveler/http-server/cleanup/get"
	"job-traveler/http-server/health"
	"job-traveler/http-server/job-analysis/analyze"
	"job-traveler/http-server/job-traveler/export"
	gettraveler "job-traveler/http-server/job-traveler/get"
	"job-traveler/internal/config"
	"job-traveler/internal/service/analysis"
	"job-traveler/internal/service/cleanup"
	generate_excel "job-traveler/internal/service/generate-excel"
	"job-traveler/internal/service/traveler"
	"job-traveler/internal/storage/mysql"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

type services struct {
	traveler *traveler.TravelerService
	analysis *analysis.Service
	cleanup  *cleanup.Sweep
	excel    *generate_excel.GenerateExcelService
}

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, svc services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/api/health", health.Health(log, storage))

	router.Get("/api/job-traveler/{jobNumber}", gettraveler.GetJobTraveler(log, svc.traveler, cfg.Traveler.RequestTimeout))
	router.Get("/api/job-traveler/{jobNumber}/excel", export.ExportJobTravelerExcel(log, svc.excel, cfg.Traveler.RequestTimeout))

	router.Post("/api/job-analysis/{jobNumber}", analyze.AnalyzeJob(log, svc.analysis, analysisTimeout(cfg)))

	router.Get("/api/cleanup", getcleanup.GetCleanup(log, svc.cleanup, cfg.Cleanup.MaxJobs, cfg.CleanupTimeout()))

	mountFrontend(router, log, cfg.FrontendDir)

	return router
}

// mountFrontend serves the built SPA. Unknown paths fall back to index.html so
// client-side routes survive a reload.
func mountFrontend(router *chi.Mux, log *slog.Logger, frontendDir string) {
	if _, err := os.Stat(frontendDir); err != nil {
		log.Warn("frontend directory not found, serving API only", slog.String("path", frontendDir))
		return
	}

	fileServer := http.FileServer(http.Dir(frontendDir))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})
}
