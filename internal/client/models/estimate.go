package models

import "errors"

// Minimum quantities per square metre guaranteed by the estimator.
const (
	MinCementPerM2 = 8.0
	MinSandPerM2   = 20.0
	MinBricksPerM2 = 14.0
)

var ErrImplausibleEstimate = errors.New("estimate out of expected range")

// EstimateRequest is the body of /predict/.
type EstimateRequest struct {
	Area             float64 `json:"area"`
	ConstructionType string  `json:"construction_type,omitempty"`
	Region           string  `json:"region,omitempty"`
}

// Estimate is the material prediction: cement and sand in kg, bricks in units.
type Estimate struct {
	Cement float64 `json:"cimento"`
	Sand   float64 `json:"areia"`
	Bricks int64   `json:"tijolos"`
}

// floorTolerance absorbs the float32 rounding of the estimator's output.
const floorTolerance = 1e-6

// CheckPlausible rejects predictions below the estimator's own floors for
// the given area.
func (e Estimate) CheckPlausible(area float64) error {
	if belowFloor(e.Cement, MinCementPerM2*area) || belowFloor(e.Sand, MinSandPerM2*area) || float64(e.Bricks) < roundDown(MinBricksPerM2*area) {
		return ErrImplausibleEstimate
	}
	return nil
}

func belowFloor(v, floor float64) bool {
	return v < floor*(1-floorTolerance)
}

// bricks are rounded by the estimator, allow half a brick of slack
func roundDown(v float64) float64 {
	return v - 0.5
}
