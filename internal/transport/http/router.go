package httptransport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"applicant-records/internal/platform/health"
	"applicant-records/internal/platform/metrics"
	"applicant-records/internal/platform/tracer"
	"applicant-records/internal/records/handler"
	"applicant-records/internal/records/models"
	"applicant-records/internal/records/service"
	"applicant-records/internal/records/store"
	"applicant-records/pkg/platform/httputil"
	"applicant-records/pkg/platform/middleware/basicauth"
	"applicant-records/pkg/platform/middleware/cors"
	"applicant-records/pkg/platform/middleware/request"
)

const defaultRequestTimeout = 30 * time.Second

// Dependencies carries everything NewRouter wires together.
type Dependencies struct {
	Records  store.Records
	Verifier basicauth.Verifier
	Logger   *slog.Logger

	// Registry receives every metric and backs GET /metrics.
	Registry *prometheus.Registry
	Tracer   tracer.Tracer
	Health   *health.Handler

	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewRouter builds the dispatch table. Record routes sit behind the basic
// auth gate; health and metrics routes do not.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	recordMetrics := metrics.New(reg)
	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(recordMetrics),
		service.WithTracer(deps.Tracer),
	}

	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(request.LatencyMiddleware(request.NewMetrics(reg)))
	r.Use(cors.Handler(cors.Permissive()))
	r.Use(request.Timeout(timeout))
	r.Use(request.BodyLimit(deps.MaxBodyBytes))
	r.Use(middleware.StripSlashes)

	// Unknown paths and unsupported methods both answer 404.
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	if deps.Health != nil {
		deps.Health.Register(r)
	}
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.Group(func(r chi.Router) {
		r.Use(basicauth.RequireBasicAuth(deps.Verifier, logger, basicauth.WithMetrics(basicauth.NewMetrics(reg))))

		handler.NewList[models.PersonalInfo]("/personal-info",
			service.NewReader[models.PersonalInfo](models.CollectionPersonalInfo, deps.Records.PersonalInfo, opts...), logger).Register(r)
		handler.NewList[models.WorkExperience]("/work-experience",
			service.NewReader[models.WorkExperience](models.CollectionWorkExperience, deps.Records.WorkExperience, opts...), logger).Register(r)
		handler.NewList[models.Education]("/education",
			service.NewReader[models.Education](models.CollectionEducation, deps.Records.Education, opts...), logger).Register(r)
		handler.NewList[models.Skill]("/skills",
			service.NewReader[models.Skill](models.CollectionSkills, deps.Records.Skills, opts...), logger).Register(r)
		handler.NewList[models.Note]("/notes",
			service.NewReader[models.Note](models.CollectionNotes, deps.Records.Notes, opts...), logger).Register(r)

		handler.NewNotes(service.NewNoteService(deps.Records.Notes, opts...), logger).Register(r)
	})

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{
		Error: fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
	})
}
