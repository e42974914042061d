package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Index)
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
	mux.HandleFunc("/", handler.NotFound)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /getAllMatches", handler.GetAllMatches)
	mux.HandleFunc("GET /getLiveMatches", handler.GetLiveMatches)
	mux.HandleFunc("GET /getUpcomingMatches", handler.GetUpcomingMatches)
	mux.HandleFunc("GET /getMatch/{date}", handler.GetMatchesOnDate)
	mux.HandleFunc("POST /getMatchById", handler.GetMatchesByID)
	mux.HandleFunc("GET /getStandings", handler.GetStandings)
	mux.HandleFunc("GET /getTopScorers", handler.GetTopScorers)
	mux.HandleFunc("GET /getAllTeams", handler.GetAllTeams)
}

func registerRealtimeRoutes(mux *http.ServeMux, realtime http.Handler) {
	if realtime == nil {
		return
	}
	mux.Handle("GET /ws", realtime)
}
