package handlers

import (
	"net/http"
)

// StatsSummary returns dashboard statistics for the session account.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	accountID := a.requireUser(w, r)
	if accountID == "" {
		return
	}
	stats, err := a.Ledger.ComputeCreatorStats(r.Context(), accountID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toStatsDTO(stats))
}
