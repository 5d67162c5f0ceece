package cli

import (
	"context"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
)

// Predict asks for the floor area and optional construction details and
// prints the estimated materials.
func (a *App) Predict(ctx context.Context) error {
	area, err := GetDecimal(a.reader, "Area in m²", a.out)
	if err != nil {
		return err
	}

	ctype, err := getSimpleText(a.reader, "Construction type (optional)", a.out)
	if err != nil {
		return err
	}
	region, err := getSimpleText(a.reader, "Region (optional)", a.out)
	if err != nil {
		return err
	}

	est, err := a.predictService.Estimate(ctx, models.EstimateRequest{Area: area, ConstructionType: ctype, Region: region})
	if err != nil {
		return err
	}

	titleColor.Fprintf(a.out, "Estimate for %.2f m²\n", area)
	a.info("cement: %.1f kg", est.Cement)
	a.info("sand:   %.1f kg", est.Sand)
	a.info("bricks: %d", est.Bricks)
	return nil
}
