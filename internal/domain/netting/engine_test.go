package netting

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemovital/hemostock-api/internal/domain"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

var (
	evalDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	runTime  = time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC)
)

func donation(bt blood.Type, comp blood.Component, units int, qc bool, expiry time.Time) *entity.Donation {
	return &entity.Donation{
		ID:           "DN000001",
		DonorID:      "D00001",
		BloodType:    bt,
		Component:    comp,
		DonationDate: evalDate.AddDate(0, 0, -10),
		ExpiryDate:   expiry,
		Units:        units,
		QCPass:       qc,
	}
}

func request(bt blood.Type, comp blood.Component, units int, status blood.RequestStatus) *entity.HospitalRequest {
	return &entity.HospitalRequest{
		ID:             "R00001",
		Hospital:       "hospital_1",
		BloodType:      bt,
		Component:      comp,
		UnitsRequested: units,
		RequestDate:    evalDate.AddDate(0, 0, -5),
		Urgency:        blood.Routine,
		Status:         status,
	}
}

func location(id string, weight int64, active bool) *entity.StorageLocation {
	return &entity.StorageLocation{ID: id, Name: id, Weight: decimal.NewFromInt(weight), Active: active}
}

func equalLocations(ids ...string) []*entity.StorageLocation {
	out := make([]*entity.StorageLocation, 0, len(ids))
	for _, id := range ids {
		out = append(out, location(id, 1, true))
	}
	return out
}

func future() time.Time { return evalDate.AddDate(0, 0, 30) }

func unitsByLocation(rows []*entity.InventoryRow) map[string]int {
	m := make(map[string]int)
	for _, r := range rows {
		m[r.Location] += r.UnitsAvailable
	}
	return m
}

func TestComputeSnapshot_NeteoBasico(t *testing.T) {
	// Donaciones A+/whole_blood: 4 + 3 vigentes, 2 con QC fallido.
	donations := []*entity.Donation{
		donation(blood.APos, blood.WholeBlood, 4, true, future()),
		donation(blood.APos, blood.WholeBlood, 3, true, future()),
		donation(blood.APos, blood.WholeBlood, 2, false, future()),
	}
	requests := []*entity.HospitalRequest{
		request(blood.APos, blood.WholeBlood, 1, blood.StatusFulfilled),
	}

	res := ComputeSnapshot(donations, requests, equalLocations("center_1", "center_2"), evalDate, runTime)

	require.Empty(t, res.Failures)
	require.Len(t, res.Rows, 2, "una fila por ubicación")

	got := unitsByLocation(res.Rows)
	assert.Equal(t, 3, got["center_1"], "neto 6 repartido en partes iguales")
	assert.Equal(t, 3, got["center_2"])

	for _, r := range res.Rows {
		assert.Equal(t, runTime, r.LastUpdated, "last_updated es la marca de la corrida")
	}
}

func TestComputeSnapshot_DemandaSuperaDisponible(t *testing.T) {
	donations := []*entity.Donation{
		donation(blood.ONeg, blood.Plasma, 2, true, future()),
	}
	requests := []*entity.HospitalRequest{
		request(blood.ONeg, blood.Plasma, 5, blood.StatusFulfilled),
	}

	res := ComputeSnapshot(donations, requests, equalLocations("center_1", "center_2"), evalDate, runTime)

	require.Len(t, res.Rows, 2, "el grupo con donaciones vigentes emite filas aunque el neto sea cero")
	total := 0
	for _, r := range res.Rows {
		assert.Equal(t, 0, r.UnitsAvailable, "el neto tiene piso en cero, nunca -3")
		total += r.UnitsAvailable
	}
	assert.Equal(t, 0, total, "conservación: suma igual a max(2-5, 0)")
}

func TestComputeSnapshot_Conservacion(t *testing.T) {
	donations := []*entity.Donation{
		donation(blood.APos, blood.Plasma, 9, true, future()),
		donation(blood.APos, blood.Plasma, 4, true, future()),
		donation(blood.BNeg, blood.Platelets, 7, true, future()),
		donation(blood.OPos, blood.WholeBlood, 11, true, future()),
	}
	requests := []*entity.HospitalRequest{
		request(blood.APos, blood.Plasma, 6, blood.StatusFulfilled),
		request(blood.BNeg, blood.Platelets, 20, blood.StatusFulfilled),
		request(blood.OPos, blood.WholeBlood, 2, blood.StatusPending), // no neteada
	}
	locs := equalLocations("center_1", "center_2", "mobile_drive_1")

	res := ComputeSnapshot(donations, requests, locs, evalDate, runTime)
	require.Empty(t, res.Failures)

	sums := make(map[blood.Type]map[blood.Component]int)
	for _, r := range res.Rows {
		if sums[r.BloodType] == nil {
			sums[r.BloodType] = make(map[blood.Component]int)
		}
		sums[r.BloodType][r.Component] += r.UnitsAvailable
	}

	assert.Equal(t, 7, sums[blood.APos][blood.Plasma], "13 vigentes - 6 cumplidas")
	assert.Equal(t, 0, sums[blood.BNeg][blood.Platelets], "7 - 20 con piso en cero")
	assert.Equal(t, 11, sums[blood.OPos][blood.WholeBlood], "las pending no restan")
}

func TestComputeSnapshot_VigenciaFiltraDonaciones(t *testing.T) {
	donations := []*entity.Donation{
		donation(blood.APos, blood.Plasma, 5, true, future()),
		donation(blood.APos, blood.Plasma, 3, true, evalDate.AddDate(0, 0, -1)), // vencida
		donation(blood.APos, blood.Plasma, 2, true, evalDate),                   // vence hoy: vigente
		donation(blood.APos, blood.Plasma, 4, false, future()),                  // QC fallido
		donation(blood.ABNeg, blood.Platelets, 6, false, future()),             // grupo sin vigentes
	}

	res := ComputeSnapshot(donations, nil, equalLocations("center_1"), evalDate, runTime)

	require.Len(t, res.Rows, 1)
	assert.Equal(t, blood.APos, res.Rows[0].BloodType)
	assert.Equal(t, 7, res.Rows[0].UnitsAvailable, "5 + 2 (expiry == eval cuenta como vigente)")

	for _, r := range res.Rows {
		assert.NotEqual(t, blood.ABNeg, r.BloodType, "un grupo sin donaciones vigentes no emite filas")
	}
}

func TestComputeSnapshot_SinUbicacionesActivas(t *testing.T) {
	donations := []*entity.Donation{
		donation(blood.APos, blood.WholeBlood, 4, true, future()),
		donation(blood.ONeg, blood.Plasma, 2, true, future()),
	}
	locs := []*entity.StorageLocation{location("center_1", 1, false)} // inactiva

	res := ComputeSnapshot(donations, nil, locs, evalDate, runTime)

	assert.Empty(t, res.Rows)
	require.Len(t, res.Failures, 2, "cada grupo falla aislado, la corrida no aborta")

	var nle *domain.NoLocationConfiguredError
	require.True(t, errors.As(res.Failures[0].Err, &nle))
	assert.Equal(t, blood.APos, nle.BloodType, "fallos en orden canónico")
	assert.Equal(t, blood.WholeBlood, nle.Component)

	require.True(t, errors.As(res.Failures[1].Err, &nle))
	assert.Equal(t, blood.ONeg, nle.BloodType)
}

func TestComputeSnapshot_OrdenCanonicoDeFilas(t *testing.T) {
	// Entrada deliberadamente desordenada.
	donations := []*entity.Donation{
		donation(blood.OPos, blood.Plasma, 1, true, future()),
		donation(blood.APos, blood.Platelets, 1, true, future()),
		donation(blood.APos, blood.WholeBlood, 1, true, future()),
	}
	locs := equalLocations("center_2", "center_1")

	res := ComputeSnapshot(donations, nil, locs, evalDate, runTime)
	require.Len(t, res.Rows, 6)

	type key struct {
		bt   blood.Type
		comp blood.Component
		loc  string
	}
	want := []key{
		{blood.APos, blood.WholeBlood, "center_1"},
		{blood.APos, blood.WholeBlood, "center_2"},
		{blood.APos, blood.Platelets, "center_1"},
		{blood.APos, blood.Platelets, "center_2"},
		{blood.OPos, blood.Plasma, "center_1"},
		{blood.OPos, blood.Plasma, "center_2"},
	}
	for i, r := range res.Rows {
		assert.Equal(t, want[i], key{r.BloodType, r.Component, r.Location}, "fila %d fuera de orden", i)
	}
}

func TestComputeSnapshot_Determinismo(t *testing.T) {
	build := func(shuffle bool) Result {
		donations := []*entity.Donation{
			donation(blood.APos, blood.Plasma, 5, true, future()),
			donation(blood.BPos, blood.WholeBlood, 8, true, future()),
			donation(blood.APos, blood.Plasma, 2, true, future()),
		}
		requests := []*entity.HospitalRequest{
			request(blood.APos, blood.Plasma, 3, blood.StatusFulfilled),
		}
		locs := equalLocations("center_1", "center_2", "center_3")
		if shuffle {
			donations[0], donations[2] = donations[2], donations[0]
			locs[0], locs[2] = locs[2], locs[0]
		}
		return ComputeSnapshot(donations, requests, locs, evalDate, runTime)
	}

	assert.Equal(t, build(false), build(true), "el orden de entrada no debe afectar la salida")
}

func TestComputeSnapshot_PesosProporcionales(t *testing.T) {
	donations := []*entity.Donation{
		donation(blood.APos, blood.WholeBlood, 8, true, future()),
	}
	locs := []*entity.StorageLocation{
		location("center_1", 3, true),
		location("center_2", 1, true),
	}

	res := ComputeSnapshot(donations, nil, locs, evalDate, runTime)
	got := unitsByLocation(res.Rows)
	assert.Equal(t, 6, got["center_1"], "peso 3 de 4 sobre neto 8")
	assert.Equal(t, 2, got["center_2"])
}

func TestAllocate(t *testing.T) {
	w := func(vals ...int64) []decimal.Decimal {
		out := make([]decimal.Decimal, len(vals))
		for i, v := range vals {
			out[i] = decimal.NewFromInt(v)
		}
		return out
	}

	tests := []struct {
		name    string
		net     int
		weights []decimal.Decimal
		want    []int
	}{
		{"reparto exacto", 6, w(1, 1), []int{3, 3}},
		{"remanente a ids menores", 7, w(1, 1, 1), []int{3, 2, 2}},
		{"neto cero", 0, w(1, 1, 1), []int{0, 0, 0}},
		{"ponderado con remanente", 10, w(2, 1, 1), []int{6, 2, 2}},
		{"pesos en cero reparten uniforme", 5, w(0, 0), []int{3, 2}},
		{"peso negativo cuenta como cero", 4, w(-1, 1), []int{0, 4}},
		{"una sola ubicación", 9, w(5), []int{9}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Allocate(tc.net, tc.weights)
			assert.Equal(t, tc.want, got)

			sum := 0
			for _, v := range got {
				sum += v
			}
			assert.Equal(t, tc.net, sum, "conservación: el reparto nunca pierde ni inventa unidades")
		})
	}

	assert.Nil(t, Allocate(5, nil), "sin posiciones no hay reparto")
}
