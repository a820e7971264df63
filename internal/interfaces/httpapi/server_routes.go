package httpapi

import "github.com/go-chi/chi/v5"

func registerSystemRoutes(r chi.Router, handler *Handler, swaggerEnabled bool) {
	r.Get("/healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	r.Get(openAPIPath, handler.OpenAPI)
	r.Get("/docs", handler.SwaggerUI)
	r.Get("/docs/", handler.SwaggerUI)
}

func registerFeedRoutes(r chi.Router, handler *Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/defaults", handler.GetDefaults)

		r.Get("/fixtures/{leagueID}", handler.ListFixtures)
		r.Get("/fixtures/{leagueID}/{season}", handler.ListFixtures)

		r.Get("/heatmap/{leagueID}/{matchID}", handler.GetHeatmap)
		r.Get("/heatmap/{leagueID}/{matchID}/{season}", handler.GetHeatmap)

		r.Get("/football/live", handler.ListLiveMatches)
		r.Get("/football/live/{leagueID}", handler.ListLiveMatches)
		r.Get("/football/today", handler.ListTodayMatches)
		r.Get("/football/today/{leagueID}", handler.ListTodayMatches)
	})
}
