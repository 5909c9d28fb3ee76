package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, stream http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if stream != nil {
		mux.Handle("GET /v1/ws", stream)
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}/squad", handler.GetTeamSquad)
	mux.HandleFunc("GET /v1/teams/{teamID}/history", handler.GetTeamHistory)
	mux.HandleFunc("GET /v1/teams/{teamID}/gameweeks/{gameweek}/breakdown", handler.GetPointsBreakdown)
	mux.HandleFunc("GET /v1/squads", handler.ListSquads)
	mux.HandleFunc("GET /v1/draft", handler.GetDraftState)
	mux.HandleFunc("GET /v1/auctions/active", handler.GetActiveAuction)
	mux.HandleFunc("GET /v1/auctions", handler.ListCompletedAuctions)
	mux.HandleFunc("GET /v1/auctions/{auctionID}/bids", handler.ListBids)
	mux.HandleFunc("GET /v1/break", handler.GetBreakStatus)
	mux.HandleFunc("GET /v1/gameweeks/current", handler.GetCurrentGameweek)
	mux.HandleFunc("GET /v1/gameweeks/{gameweek}", handler.GetGameweek)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, teams TeamResolver) {
	team := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, teams, h)
	}

	mux.Handle("GET /v1/me", team(handler.GetMe))
	mux.Handle("GET /v1/draft/can-start-auction", team(handler.CanStartAuction))
	mux.Handle("POST /v1/auctions", team(handler.StartAuction))
	mux.Handle("POST /v1/auctions/{auctionID}/bids", team(handler.PlaceBid))
	mux.Handle("POST /v1/auctions/{auctionID}/wait", team(handler.RequestWait))
	mux.Handle("POST /v1/break/toggle", team(handler.ToggleBreak))
	mux.Handle("GET /v1/autobid", team(handler.GetAutoBidConfig))
	mux.Handle("PUT /v1/autobid", team(handler.SaveAutoBidConfig))
	mux.Handle("GET /v1/autobid/status", team(handler.GetAutoBidStatus))
	mux.Handle("GET /v1/autobid/max-allowed-bid", team(handler.GetMaxAllowedBid))
	mux.Handle("GET /v1/gameweeks/{gameweek}/submission", team(handler.GetSubmission))
	mux.Handle("PUT /v1/gameweeks/{gameweek}/submission", team(handler.SubmitLineup))
	mux.Handle("GET /v1/gameweeks/{gameweek}/submission/history", team(handler.GetSubmissionHistory))
	mux.Handle("POST /v1/gameweeks/{gameweek}/submission/swap", team(handler.SwapPlayers))
	mux.Handle("GET /v1/gameweeks/{gameweek}/chips", team(handler.GetChipStatus))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, teams TeamResolver) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, teams, RequireAdmin(h))
	}

	mux.Handle("GET /v1/drafts", admin(handler.ListDrafts))
	mux.Handle("POST /v1/drafts", admin(handler.CreateDraft))
	mux.Handle("POST /v1/drafts/{draftID}/activate", admin(handler.ActivateDraft))
	mux.Handle("POST /v1/drafts/{draftID}/reset", admin(handler.ResetDraft))
	mux.Handle("POST /v1/draft/order", admin(handler.InitializeDraftOrder))
	mux.Handle("POST /v1/draft/start", admin(handler.StartDraft))
	mux.Handle("POST /v1/draft/advance", admin(handler.AdvanceDraft))
	mux.Handle("POST /v1/auctions/{auctionID}/complete", admin(handler.CompleteAuction))
	mux.Handle("POST /v1/auctions/{auctionID}/restart", admin(handler.RestartAuction))
	mux.Handle("POST /v1/auctions/{auctionID}/cancel-last-bid", admin(handler.CancelLastBid))
	mux.Handle("POST /v1/auctions/{auctionID}/selling-stage", admin(handler.SetSellingStage))
	mux.Handle("POST /v1/auctions/{auctionID}/wait/resolve", admin(handler.ResolveWait))
	mux.Handle("POST /v1/break/end", admin(handler.EndBreak))
	mux.Handle("GET /v1/gameweeks/{gameweek}/submissions", admin(handler.ListSubmissions))
	mux.Handle("POST /v1/gameweeks/{gameweek}/chips/finalize", admin(handler.FinalizeChips))
	mux.Handle("POST /v1/gameweeks/{gameweek}/points", admin(handler.CalculateGameweek))
	mux.Handle("POST /v1/teams/{teamID}/gameweeks/{gameweek}/points", admin(handler.CalculateTeamPoints))
	mux.Handle("POST /v1/catalog/sync", admin(handler.SyncCatalog))
}
