package services

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
)

const predictPath = "/predict/"

type PredictService interface {
	Estimate(ctx context.Context, req models.EstimateRequest) (*models.Estimate, error)
}

type predictService struct {
	client Doer
}

func NewPredictService(c Doer) PredictService {
	return &predictService{client: c}
}

// Estimate asks the backend for the materials needed to build req.Area
// square metres. Replies below the estimator floors are rejected with
// models.ErrImplausibleEstimate.
func (s *predictService) Estimate(ctx context.Context, req models.EstimateRequest) (*models.Estimate, error) {
	if !(req.Area > 0) || math.IsInf(req.Area, 0) {
		return nil, ErrInvalidArea
	}

	resp, err := s.client.Do(ctx, &client.Request{Method: http.MethodPost, Path: predictPath, Body: req})
	if err != nil {
		return nil, fmt.Errorf("predict error: %w", err)
	}

	var out models.Estimate
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	if err := out.CheckPlausible(req.Area); err != nil {
		return nil, err
	}
	return &out, nil
}
