package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.HandleFunc("GET /v1/races", handler.ListRaces)
	mux.HandleFunc("GET /v1/races/upcoming", handler.ListUpcomingRaces)
	mux.HandleFunc("GET /v1/races/season/{season}", handler.ListRacesBySeason)
	mux.HandleFunc("GET /v1/races/{raceID}", handler.GetRace)
	mux.HandleFunc("GET /v1/races/{raceID}/leaderboard", handler.GetRaceLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/drivers", handler.ListDrivers)
	mux.HandleFunc("GET /v1/drivers/{driverID}", handler.GetDriver)
	mux.HandleFunc("GET /v1/scoring-rules", handler.GetScoringRules)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/users/me", RequireAuth(verifier, http.HandlerFunc(handler.GetProfile)))
	mux.Handle("GET /v1/races/{raceID}/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetRaceDashboard)))
	mux.Handle("POST /v1/bets", RequireAuth(verifier, http.HandlerFunc(handler.PlaceBet)))
	mux.Handle("GET /v1/bets", RequireAuth(verifier, http.HandlerFunc(handler.ListMyBets)))
	mux.Handle("GET /v1/bets/{betID}", RequireAuth(verifier, http.HandlerFunc(handler.GetBet)))
	mux.Handle("PATCH /v1/bets/{betID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateBet)))
	mux.Handle("DELETE /v1/bets/{betID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteBet)))
}

func registerOperatorRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	operator := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireOperator(h))
	}

	mux.Handle("POST /v1/races", operator(handler.CreateRace))
	mux.Handle("PATCH /v1/races/{raceID}", operator(handler.UpdateRace))
	mux.Handle("DELETE /v1/races/{raceID}", operator(handler.DeleteRace))
	mux.Handle("POST /v1/races/{raceID}/finalize", operator(handler.FinalizeRace))
	mux.Handle("POST /v1/races/{raceID}/regrade", operator(handler.RegradeRace))

	mux.Handle("POST /v1/drivers", operator(handler.CreateDriver))
	mux.Handle("PATCH /v1/drivers/{driverID}", operator(handler.UpdateDriver))
	mux.Handle("DELETE /v1/drivers/{driverID}", operator(handler.DeleteDriver))

	mux.Handle("GET /v1/users", operator(handler.ListUsers))
	mux.Handle("POST /v1/users", operator(handler.CreateUser))
	mux.Handle("GET /v1/users/{userID}", operator(handler.GetUser))
	mux.Handle("PATCH /v1/users/{userID}", operator(handler.UpdateUser))
	mux.Handle("DELETE /v1/users/{userID}", operator(handler.DeleteUser))

	mux.Handle("POST /v1/scoring-rules", operator(handler.CreateScoringRules))
	mux.Handle("PATCH /v1/scoring-rules", operator(handler.UpdateScoringRules))
	mux.Handle("POST /v1/scoring-rules/reset", operator(handler.ResetScoringRules))

	mux.Handle("POST /v1/internal/calendar/import", operator(handler.ImportSeasonCalendar))
}
