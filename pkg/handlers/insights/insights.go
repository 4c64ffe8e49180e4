package insights

import (
	"net/http"

	"github.com/dlaird/pocketbank/pkg/api"
	"github.com/dlaird/pocketbank/pkg/handlers/respond"
	"github.com/dlaird/pocketbank/pkg/ledger"
	"github.com/dlaird/pocketbank/pkg/mapping"
	"github.com/go-chi/chi/v5"
)

// InsightsHandler holds the dependencies for spending-insight handlers.
type InsightsHandler struct {
	Ledger ledger.InsightsService
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(l ledger.InsightsService) *InsightsHandler {
	return &InsightsHandler{Ledger: l}
}

// SpendingSummary handles GET /api/spending-summary/{username}.
func (h *InsightsHandler) SpendingSummary(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	summary, err := h.Ledger.SpendingSummary(r.Context(), username)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, api.SpendingSummaryResponse{
		HasData:  summary.HasData,
		Category: summary.Category,
		Total:    mapping.FromCents(summary.Total),
		Tip:      summary.Tip,
	})
}
