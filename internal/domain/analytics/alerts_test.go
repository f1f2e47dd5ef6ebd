package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemovital/hemostock-api/internal/domain"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

var alertEval = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func expiringDonation(bt blood.Type, comp blood.Component, expiry time.Time, qc bool) *entity.Donation {
	return &entity.Donation{
		ID:           "DN000001",
		DonorID:      "D00001",
		BloodType:    bt,
		Component:    comp,
		DonationDate: alertEval.AddDate(0, 0, -20),
		ExpiryDate:   expiry,
		Units:        2,
		QCPass:       qc,
	}
}

func TestLowStock_UmbralEstricto(t *testing.T) {
	// Totales: A+ = 3, B+ = 10.
	rows := []*entity.InventoryRow{
		row(blood.APos, blood.WholeBlood, "center_1", 1),
		row(blood.APos, blood.Plasma, "center_2", 2),
		row(blood.BPos, blood.WholeBlood, "center_1", 10),
	}

	got, err := LowStock(rows, 5)
	require.NoError(t, err)
	assert.Equal(t, []LowStockAlert{{blood.APos, 3}}, got,
		"solo A+ queda bajo el umbral; B+ con 10 no se reporta")
}

func TestLowStock_UmbralIgualNoAlerta(t *testing.T) {
	rows := []*entity.InventoryRow{row(blood.ONeg, blood.Plasma, "center_1", 5)}

	got, err := LowStock(rows, 5)
	require.NoError(t, err)
	assert.Empty(t, got, "estrictamente menor: total == umbral no alerta")
}

func TestLowStock_OrdenPorCriticidad(t *testing.T) {
	rows := []*entity.InventoryRow{
		row(blood.OPos, blood.Plasma, "center_1", 2),
		row(blood.APos, blood.Plasma, "center_1", 4),
		row(blood.BNeg, blood.Plasma, "center_1", 2),
	}

	got, err := LowStock(rows, 10)
	require.NoError(t, err)
	want := []LowStockAlert{
		{blood.BNeg, 2}, // empate en 2: desempata el orden canónico (B- antes que O+)
		{blood.OPos, 2},
		{blood.APos, 4},
	}
	assert.Equal(t, want, got)
}

func TestLowStock_UmbralInvalido(t *testing.T) {
	for _, th := range []int{0, -3} {
		_, err := LowStock(nil, th)
		assert.ErrorIs(t, err, domain.ErrInvalidThreshold, "umbral %d", th)
	}
}

func TestLowStock_TiposAusentesNoSeReportan(t *testing.T) {
	rows := []*entity.InventoryRow{row(blood.APos, blood.Plasma, "center_1", 1)}

	got, err := LowStock(rows, 5)
	require.NoError(t, err)
	require.Len(t, got, 1, "O- sin filas en el snapshot no aparece aunque su total sea cero")
	assert.Equal(t, blood.APos, got[0].BloodType)
}

func TestNearExpiry_HorizonteInclusivo(t *testing.T) {
	rows := []*entity.InventoryRow{
		row(blood.APos, blood.Platelets, "center_1", 4),
		row(blood.OPos, blood.Plasma, "center_1", 6),
		row(blood.BPos, blood.WholeBlood, "center_1", 3),
	}
	donations := []*entity.Donation{
		expiringDonation(blood.APos, blood.Platelets, alertEval.AddDate(0, 0, 7), true), // justo en el borde
		expiringDonation(blood.OPos, blood.Plasma, alertEval.AddDate(0, 0, 8), true),    // fuera por un día
		expiringDonation(blood.BPos, blood.WholeBlood, alertEval, true),                 // vence hoy
	}

	got, err := NearExpiry(rows, donations, alertEval, 7)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].DaysToExpiry, "días ascendente: lo que vence hoy primero")
	assert.Equal(t, blood.BPos, got[0].BloodType)
	assert.Equal(t, 7, got[1].DaysToExpiry)
	assert.Equal(t, blood.APos, got[1].BloodType)
}

func TestNearExpiry_UsaLaMenorExpiryVigente(t *testing.T) {
	rows := []*entity.InventoryRow{row(blood.APos, blood.Plasma, "center_1", 5)}
	donations := []*entity.Donation{
		expiringDonation(blood.APos, blood.Plasma, alertEval.AddDate(0, 0, 30), true),
		expiringDonation(blood.APos, blood.Plasma, alertEval.AddDate(0, 0, 3), true),
		expiringDonation(blood.APos, blood.Plasma, alertEval.AddDate(0, 0, -2), true), // vencida: no cuenta
		expiringDonation(blood.APos, blood.Plasma, alertEval.AddDate(0, 0, 1), false), // QC fallido: no cuenta
	}

	got, err := NearExpiry(rows, donations, alertEval, 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].DaysToExpiry, "la menor expiry entre donaciones vigentes")
	assert.Equal(t, 5, got[0].UnitsAvailable)
}

func TestNearExpiry_FilasSinRespaldoQuedanFuera(t *testing.T) {
	rows := []*entity.InventoryRow{
		row(blood.APos, blood.Plasma, "center_1", 5),      // sin donación vigente que la respalde
		row(blood.ONeg, blood.Platelets, "center_1", 0),   // sin unidades: nada en riesgo
		row(blood.BPos, blood.WholeBlood, "center_1", 2),
	}
	donations := []*entity.Donation{
		expiringDonation(blood.ONeg, blood.Platelets, alertEval.AddDate(0, 0, 2), true),
		expiringDonation(blood.BPos, blood.WholeBlood, alertEval.AddDate(0, 0, 4), true),
	}

	got, err := NearExpiry(rows, donations, alertEval, 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, blood.BPos, got[0].BloodType)
}

func TestNearExpiry_HorizonteInvalido(t *testing.T) {
	_, err := NearExpiry(nil, nil, alertEval, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidHorizon)
}

func TestAlertas_EntradaVaciaEsCalma(t *testing.T) {
	low, err := LowStock(nil, 5)
	require.NoError(t, err)
	assert.Empty(t, low)

	near, err := NearExpiry(nil, nil, alertEval, 7)
	require.NoError(t, err)
	assert.Empty(t, near)
}
