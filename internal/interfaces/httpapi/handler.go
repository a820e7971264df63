package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/logging"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/resilience"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
)

// Defaults are the league and match the front end opens with.
type Defaults struct {
	LeagueID string `json:"league_id"`
	MatchID  string `json:"match_id"`
}

type HandlerConfig struct {
	Fixtures    *usecase.FixtureService
	Rosters     *usecase.RosterService
	Heatmaps    *usecase.HeatmapService
	LiveFeed    *usecase.MatchFeedService
	TodayFeed   *usecase.MatchFeedService
	Upstream    func() resilience.Snapshot
	Defaults    Defaults
	ServiceName string
	Logger      *logging.Logger
}

type Handler struct {
	fixtureService *usecase.FixtureService
	rosterService  *usecase.RosterService
	heatmapService *usecase.HeatmapService
	liveFeed       *usecase.MatchFeedService
	todayFeed      *usecase.MatchFeedService
	upstream       func() resilience.Snapshot
	defaults       Defaults
	serviceName    string
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	upstream := cfg.Upstream
	if upstream == nil {
		upstream = func() resilience.Snapshot { return resilience.Snapshot{State: resilience.CircuitStateClosed} }
	}

	return &Handler{
		fixtureService: cfg.Fixtures,
		rosterService:  cfg.Rosters,
		heatmapService: cfg.Heatmaps,
		liveFeed:       cfg.LiveFeed,
		todayFeed:      cfg.TodayFeed,
		upstream:       upstream,
		defaults:       cfg.Defaults,
		serviceName:    cfg.ServiceName,
		logger:         logger,
		validator:      newValidator(),
	}
}

type healthDTO struct {
	Status        string              `json:"status"`
	Service       string              `json:"service,omitempty"`
	Upstream      resilience.Snapshot `json:"upstream"`
	CachedRosters int                 `json:"cached_rosters"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	out := healthDTO{
		Status:   "ok",
		Service:  h.serviceName,
		Upstream: h.upstream(),
	}
	if h.rosterService != nil {
		out.CachedRosters = h.rosterService.Cached()
	}
	if out.Upstream.State == resilience.CircuitStateOpen {
		out.Status = "degraded"
	}

	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDefaults")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, h.defaults)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorBody(r.Context(), w, mappedError{
		HTTPStatus: http.StatusNotFound,
		Reason:     "notFound",
		Status:     "NOT_FOUND",
	}, "route not found")
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorBody(r.Context(), w, mappedError{
		HTTPStatus: http.StatusMethodNotAllowed,
		Reason:     "methodNotAllowed",
		Status:     "UNIMPLEMENTED",
	}, "method not allowed")
}
