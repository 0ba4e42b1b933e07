package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{seasonID}/drivers", handler.ListDrivers)
	mux.HandleFunc("GET /v1/drivers/{driverID}", handler.GetDriver)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/races", handler.ListRaces)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/races/current", handler.GetCurrentRace)
	mux.HandleFunc("GET /v1/races/{raceID}", handler.GetRace)
	mux.HandleFunc("GET /v1/races/{raceID}/eligibility", handler.GetEligibility)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, elevationValidator ElevationValidator) {
	registerAuthorizedSelectionRoutes(mux, handler, verifier)
	registerAuthorizedRosterRoutes(mux, handler, verifier)
	registerAuthorizedElevationRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler, verifier, elevationValidator)
}

func registerAuthorizedSelectionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/races/{raceID}/selection", RequireAuth(verifier, http.HandlerFunc(handler.GetSelection)))
	mux.Handle("DELETE /v1/races/{raceID}/selection", RequireAuth(verifier, http.HandlerFunc(handler.EndSelection)))
	mux.Handle("POST /v1/races/{raceID}/selection/drivers", RequireAuth(verifier, http.HandlerFunc(handler.AddSelectionDriver)))
	mux.Handle("DELETE /v1/races/{raceID}/selection/drivers/{driverID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveSelectionDriver)))
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/races/{raceID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.GetRoster)))
	mux.Handle("PUT /v1/races/{raceID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.SaveRoster)))
	mux.Handle("DELETE /v1/races/{raceID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.DeleteRoster)))
}

func registerAuthorizedElevationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/elevation", RequireAuth(verifier, http.HandlerFunc(handler.RequestElevation)))
	mux.Handle("GET /v1/elevation", RequireAuth(verifier, http.HandlerFunc(handler.GetElevationStatus)))
	mux.Handle("DELETE /v1/elevation", RequireAuth(verifier, http.HandlerFunc(handler.RevokeElevation)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, elevationValidator ElevationValidator) {
	adminChain := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireElevation(elevationValidator, h))
	}

	mux.Handle("POST /v1/admin/drivers", adminChain(handler.CreateDriver))
	mux.Handle("PUT /v1/admin/drivers/{driverID}", adminChain(handler.UpdateDriver))
	mux.Handle("DELETE /v1/admin/drivers/{driverID}", adminChain(handler.DeleteDriver))
	mux.Handle("POST /v1/admin/participants", adminChain(handler.CreateParticipant))
	mux.Handle("PUT /v1/admin/participants/{participantID}", adminChain(handler.UpdateParticipant))
	mux.Handle("DELETE /v1/admin/participants/{participantID}", adminChain(handler.DeleteParticipant))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/apply-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunApplyResultsJob)))
}
