package analytics

import (
	"context"
	"fmt"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/forecast"
	"github.com/hemovital/hemostock-api/internal/domain/normalize"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// ForecastUseCase proyecta la demanda hospitalaria con promedio móvil sobre
// el histórico de solicitudes persistido.
type ForecastUseCase struct {
	requestRepo repository.RequestRepository
}

// NewForecastUseCase construye el caso de uso.
func NewForecastUseCase(requestRepo repository.RequestRepository) *ForecastUseCase {
	return &ForecastUseCase{requestRepo: requestRepo}
}

// DemandForecast arma la serie diaria de unidades solicitadas (filtrable por
// tipo y componente), con promedio móvil y proyección plana de horizonDays.
// Sin solicitudes que pasen el filtro la serie queda vacía con no_data.
//
// Retorna domain.ErrInvalidHorizon si horizonDays < 1.
func (uc *ForecastUseCase) DemandForecast(
	ctx context.Context,
	bloodType *blood.Type,
	component *blood.Component,
	horizonDays int,
) (*dto.ForecastResponse, error) {
	requests, err := uc.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("forecast: listar solicitudes: %w", err)
	}

	series, err := forecast.DemandSeries(requests, bloodType, component, horizonDays)
	if err != nil {
		return nil, err
	}

	out := &dto.ForecastResponse{
		Horizon: horizonDays,
		Series:  make([]dto.ForecastPointDTO, 0, len(series.Points)),
		Meta:    dto.Meta{NoData: series.IsEmpty()},
	}
	if bloodType != nil {
		out.BloodType = string(*bloodType)
	}
	if component != nil {
		out.Component = string(*component)
	}
	for _, p := range series.Points {
		out.Series = append(out.Series, dto.ForecastPointDTO{
			Date:      p.Date.Format(normalize.DateLayout),
			Actual:    p.Actual,
			MovingAvg: p.MovingAvg.StringFixed(2),
			Projected: p.Projected,
		})
	}
	return out, nil
}
