package devapi

import (
	"math"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
)

// constructionFactors scale the per-square-metre floors by building type.
var constructionFactors = map[string]float64{
	"":            1,
	"residencial": 1,
	"comercial":   1.25,
	"industrial":  1.5,
}

// Predict returns a deterministic estimate that never goes below the
// models.Min*PerM2 floors.
func (h *Handlers) Predict(w http.ResponseWriter, r *http.Request) {
	var in models.EstimateRequest
	if err := decodeStrict(r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error")
		return
	}

	errs := fieldErrors{}
	if !(in.Area > 0) || math.IsInf(in.Area, 0) {
		errs.add("area", "Ensure this value is greater than 0.")
	}
	factor, ok := constructionFactors[strings.ToLower(strings.TrimSpace(in.ConstructionType))]
	if !ok {
		errs.add("construction_type", "Not a valid choice.")
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	writeJSON(w, http.StatusOK, models.Estimate{
		Cement: roundUp2(in.Area * models.MinCementPerM2 * factor),
		Sand:   roundUp2(in.Area * models.MinSandPerM2 * factor),
		Bricks: int64(math.Ceil(in.Area * models.MinBricksPerM2 * factor)),
	})
}

func roundUp2(v float64) float64 {
	return math.Ceil(v*100) / 100
}
