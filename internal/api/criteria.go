package api

import (
	"net/http"

	"github.com/solgrid-labs/siterank/internal/ahp"
	"github.com/solgrid-labs/siterank/internal/geodata"
)

type CriteriaHandler struct {
	registry *ahp.Registry
}

func NewCriteriaHandler(reg *ahp.Registry) *CriteriaHandler {
	return &CriteriaHandler{registry: reg}
}

// List returns the criteria registry with the default weight of each
// criterion, so clients can render sliders pre-filled with the calibrated
// priorities.
// GET /api/v1/criteria
func (h *CriteriaHandler) List(w http.ResponseWriter, r *http.Request) {
	defaults, err := ahp.ManualWeights(h.registry, geodata.DefaultWeights())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	type entry struct {
		ahp.Criterion
		DefaultWeight float64 `json:"default_weight"`
	}
	out := make([]entry, 0, h.registry.Len())
	for _, c := range h.registry.Criteria() {
		out = append(out, entry{Criterion: c, DefaultWeight: defaults[c.Name]})
	}
	writeJSON(w, http.StatusOK, out)
}
