package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemovital/hemostock-api/internal/domain"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

func day(n int) time.Time {
	return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
}

func demand(bt blood.Type, comp blood.Component, units int, date time.Time) *entity.HospitalRequest {
	return &entity.HospitalRequest{
		ID:             "R00001",
		Hospital:       "hospital_1",
		BloodType:      bt,
		Component:      comp,
		UnitsRequested: units,
		RequestDate:    date,
		Urgency:        blood.Routine,
		Status:         blood.StatusPending,
	}
}

func assertMA(t *testing.T, p Point, want string) {
	t.Helper()
	exp := decimal.RequireFromString(want)
	assert.True(t, p.MovingAvg.Equal(exp),
		"media móvil en %s: esperaba %s, obtuve %s", p.Date.Format("2006-01-02"), want, p.MovingAvg)
}

func TestDemandSeries_PicoAislado(t *testing.T) {
	// 10 días consecutivos, el día 7 concentra 7 unidades, el resto cero.
	requests := []*entity.HospitalRequest{
		demand(blood.APos, blood.Plasma, 0, day(1)),
		demand(blood.APos, blood.Plasma, 7, day(7)),
		demand(blood.APos, blood.Plasma, 0, day(10)),
	}

	s, err := DemandSeries(requests, nil, nil, 3)
	require.NoError(t, err)
	require.False(t, s.IsEmpty())
	require.Len(t, s.Points, 13, "10 días de historia + 3 proyectados")

	// La media al cierre cubre min(10, 7) = 7 días (días 4-10): 7/7 = 1.
	history := s.Points[:10]
	wantMA := []string{"0", "0", "0", "0", "0", "0", "1", "1", "1", "1"}
	for k, p := range history {
		require.NotNil(t, p.Actual)
		assert.False(t, p.Projected)
		assertMA(t, p, wantMA[k])
	}
	assert.Equal(t, 7, *history[6].Actual)

	for i, p := range s.Points[10:] {
		assert.True(t, p.Projected, "los días futuros van marcados como proyección")
		assert.Nil(t, p.Actual, "la proyección no tiene observado")
		assertMA(t, p, "1")
		assert.Equal(t, day(11+i), p.Date, "proyección en días consecutivos tras la última fecha")
	}
}

func TestDemandSeries_VentanaMinKMas1(t *testing.T) {
	// Rampa 1..10: la media en el día k cubre exactamente min(k+1, 7) días.
	var requests []*entity.HospitalRequest
	for i := 1; i <= 10; i++ {
		requests = append(requests, demand(blood.OPos, blood.WholeBlood, i, day(i)))
	}

	s, err := DemandSeries(requests, nil, nil, 1)
	require.NoError(t, err)
	require.Len(t, s.Points, 11)

	assertMA(t, s.Points[0], "1")    // 1/1
	assertMA(t, s.Points[3], "2.5")  // (1+2+3+4)/4
	assertMA(t, s.Points[6], "4")    // (1+...+7)/7
	assertMA(t, s.Points[7], "5")    // (2+...+8)/7
	assertMA(t, s.Points[9], "7")    // (4+...+10)/7
	assertMA(t, s.Points[10], "7")   // proyección plana
}

func TestDemandSeries_ReindexaVacios(t *testing.T) {
	requests := []*entity.HospitalRequest{
		demand(blood.BPos, blood.Platelets, 4, day(1)),
		demand(blood.BPos, blood.Platelets, 2, day(4)),
	}

	s, err := DemandSeries(requests, nil, nil, 1)
	require.NoError(t, err)
	require.Len(t, s.Points, 5, "rango completo día 1..4 más un proyectado")

	require.NotNil(t, s.Points[1].Actual)
	assert.Equal(t, 0, *s.Points[1].Actual, "los días sin solicitudes son ceros explícitos")
	assert.Equal(t, 0, *s.Points[2].Actual)
	assert.Equal(t, day(2), s.Points[1].Date)
}

func TestDemandSeries_SumaDelMismoDia(t *testing.T) {
	requests := []*entity.HospitalRequest{
		demand(blood.APos, blood.Plasma, 3, day(5)),
		demand(blood.APos, blood.Plasma, 4, day(5)),
	}

	s, err := DemandSeries(requests, nil, nil, 1)
	require.NoError(t, err)
	require.Len(t, s.Points, 2)
	assert.Equal(t, 7, *s.Points[0].Actual)
}

func TestDemandSeries_Filtros(t *testing.T) {
	requests := []*entity.HospitalRequest{
		demand(blood.APos, blood.Plasma, 5, day(1)),
		demand(blood.APos, blood.Platelets, 3, day(1)),
		demand(blood.OPos, blood.Plasma, 2, day(1)),
	}

	bt := blood.APos
	comp := blood.Plasma

	s, err := DemandSeries(requests, &bt, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, *s.Points[0].Actual, "filtro por tipo: 5 + 3")

	s, err = DemandSeries(requests, nil, &comp, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, *s.Points[0].Actual, "filtro por componente: 5 + 2")

	s, err = DemandSeries(requests, &bt, &comp, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, *s.Points[0].Actual, "ambos filtros")
}

func TestDemandSeries_SinDatosEsCalma(t *testing.T) {
	s, err := DemandSeries(nil, nil, nil, 7)
	require.NoError(t, err, "sin solicitudes no es un error")
	assert.True(t, s.IsEmpty())

	bt := blood.ABNeg
	s, err = DemandSeries([]*entity.HospitalRequest{
		demand(blood.APos, blood.Plasma, 5, day(1)),
	}, &bt, nil, 7)
	require.NoError(t, err)
	assert.True(t, s.IsEmpty(), "un filtro que no matchea nada también es sin-datos")
}

func TestDemandSeries_HorizonteInvalido(t *testing.T) {
	_, err := DemandSeries(nil, nil, nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidHorizon)
}
