package handlers

import "net/http"

type healthResponse struct {
	Status   string `json:"status"`
	Profiles int    `json:"profiles"`
	Queued   int    `json:"queued"`
	Matches  int    `json:"matches"`
}

func HealthHandler(ms *MatchServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:   "healthy",
			Profiles: ms.Profiles.Count(),
			Queued:   ms.Queue.Len(),
			Matches:  ms.Matches.Count(),
		})
	}
}
