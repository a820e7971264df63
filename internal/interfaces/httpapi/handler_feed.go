package httpapi

import (
	"net/http"

	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
)

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListFixtures")
	defer span.End()

	params := fixturesPathParams{
		LeagueID: pathParam(r, "leagueID"),
		Season:   pathParam(r, "season"),
	}
	if err := h.validatePath(params); err != nil {
		writeError(ctx, w, err)
		return
	}

	list, err := h.fixtureService.Get(ctx, params.LeagueID, params.Season)
	if err != nil {
		h.logger.ErrorContext(ctx, "list fixtures failed", "league_id", params.LeagueID, "season", params.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, list)
}

func (h *Handler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetHeatmap")
	defer span.End()

	params := heatmapPathParams{
		LeagueID: pathParam(r, "leagueID"),
		MatchID:  pathParam(r, "matchID"),
		Season:   pathParam(r, "season"),
	}
	if err := h.validatePath(params); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.heatmapService.Get(ctx, params.MatchID, params.LeagueID, params.Season)
	if err != nil {
		switch usecase.KindOf(err) {
		case usecase.KindNotFound, usecase.KindNotYetAvailable:
			h.logger.InfoContext(ctx, "heatmap unavailable", "match_id", params.MatchID, "league_id", params.LeagueID, "error", err)
		default:
			h.logger.ErrorContext(ctx, "get heatmap failed", "match_id", params.MatchID, "league_id", params.LeagueID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListLiveMatches")
	defer span.End()

	h.serveMatchFeed(w, r.WithContext(ctx), h.liveFeed)
}

func (h *Handler) ListTodayMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListTodayMatches")
	defer span.End()

	h.serveMatchFeed(w, r.WithContext(ctx), h.todayFeed)
}

func (h *Handler) serveMatchFeed(w http.ResponseWriter, r *http.Request, service *usecase.MatchFeedService) {
	ctx := r.Context()

	leagueID := pathParam(r, "leagueID")
	if leagueID == "" {
		out, err := service.Get(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "read match feed failed", "feed", string(service.Kind()), "error", err)
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, out)
		return
	}

	params := feedFilterParams{LeagueID: leagueID}
	if err := h.validatePath(params); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := service.GetByLeague(ctx, params.LeagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "read match feed failed", "feed", string(service.Kind()), "league_id", params.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, out)
}
