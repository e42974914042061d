package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/poller"
	"github.com/newnonsick/Football-APP-Backend/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// ResourceStatus reports the health of one poll loop.
type ResourceStatus interface {
	Name() string
	Status() poller.Status
}

type Handler struct {
	queries   *usecase.QueryService
	resources []ResourceStatus
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(queries *usecase.QueryService, resources []ResourceStatus, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		queries:   queries,
		resources: resources,
		logger:    logger,
		validator: validator.New(),
	}
}

type matchByIDRequest struct {
	ListMatchID []int64 `json:"list_match_id" validate:"required"`
}

type resourceReadiness struct {
	Ready bool `json:"ready"`
	poller.Status
}

type readinessResponse struct {
	Status    string                       `json:"status"`
	Resources map[string]resourceReadiness `json:"resources"`
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Hello, World!")
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	resp := readinessResponse{
		Status:    "ready",
		Resources: make(map[string]resourceReadiness, len(h.resources)),
	}
	for _, res := range h.resources {
		status := res.Status()
		ready := status.IsReady()
		if !ready {
			resp.Status = "not_ready"
		}
		resp.Resources[res.Name()] = resourceReadiness{Ready: ready, Status: status}
	}

	code := http.StatusOK
	if resp.Status != "ready" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(r.Context(), w, code, resp)
}

func (h *Handler) GetAllMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAllMatches")
	defer span.End()

	writeSnapshot(ctx, w, r, h.queries.AllMatches(ctx).Value)
}

func (h *Handler) GetLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveMatches")
	defer span.End()

	writeSnapshot(ctx, w, r, h.queries.LiveMatches(ctx).Value)
}

func (h *Handler) GetUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUpcomingMatches")
	defer span.End()

	writeSnapshot(ctx, w, r, h.queries.UpcomingMatches(ctx).Value)
}

func (h *Handler) GetMatchesOnDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchesOnDate")
	defer span.End()

	day := r.PathValue("date")
	timezone := usecase.DefaultTimezone
	if query := r.URL.Query(); query.Has("timezone") {
		timezone = query.Get("timezone")
	}
	matches, err := h.queries.MatchesOnDate(ctx, day, timezone)
	if err != nil {
		h.logger.WarnContext(ctx, "get matches on date failed", "date", day, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSnapshot(ctx, w, r, matches)
}

func (h *Handler) GetMatchesByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchesByID")
	defer span.End()

	var req matchByIDRequest
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSnapshot(ctx, w, r, h.queries.MatchesByID(ctx, req.ListMatchID))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	writeSnapshot(ctx, w, r, h.queries.Standings(ctx).Value)
}

func (h *Handler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopScorers")
	defer span.End()

	writeSnapshot(ctx, w, r, h.queries.TopScorers(ctx).Value)
}

func (h *Handler) GetAllTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAllTeams")
	defer span.End()

	writeSnapshot(ctx, w, r, h.queries.Teams(ctx).Value)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeNotFound(r.Context(), w)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
