package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

func row(bt blood.Type, comp blood.Component, loc string, units int) *entity.InventoryRow {
	return &entity.InventoryRow{
		BloodType:      bt,
		Component:      comp,
		Location:       loc,
		UnitsAvailable: units,
		LastUpdated:    time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC),
	}
}

func req(bt blood.Type, status blood.RequestStatus, urgency blood.Urgency) *entity.HospitalRequest {
	return &entity.HospitalRequest{
		ID:             "R00001",
		Hospital:       "hospital_1",
		BloodType:      bt,
		Component:      blood.WholeBlood,
		UnitsRequested: 1,
		RequestDate:    time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		Urgency:        urgency,
		Status:         status,
	}
}

func TestUnitsByTypeComponent(t *testing.T) {
	rows := []*entity.InventoryRow{
		row(blood.OPos, blood.Plasma, "center_2", 4),
		row(blood.APos, blood.WholeBlood, "center_1", 3),
		row(blood.OPos, blood.Plasma, "center_1", 2),
		row(blood.APos, blood.Platelets, "center_1", 1),
	}

	got := UnitsByTypeComponent(rows)
	want := []TypeComponentUnits{
		{blood.APos, blood.WholeBlood, 3},
		{blood.APos, blood.Platelets, 1},
		{blood.OPos, blood.Plasma, 6},
	}
	assert.Equal(t, want, got, "agrupación en orden canónico, ubicaciones sumadas")
}

func TestUnitsByLocation(t *testing.T) {
	rows := []*entity.InventoryRow{
		row(blood.OPos, blood.Plasma, "mobile_drive_1", 4),
		row(blood.APos, blood.WholeBlood, "center_1", 3),
		row(blood.BNeg, blood.Plasma, "center_1", 5),
	}

	got := UnitsByLocation(rows)
	want := []LocationUnits{
		{"center_1", 8},
		{"mobile_drive_1", 4},
	}
	assert.Equal(t, want, got)
}

func TestRequestsByStatusYUrgencia(t *testing.T) {
	reqs := []*entity.HospitalRequest{
		req(blood.APos, blood.StatusFulfilled, blood.Emergency),
		req(blood.OPos, blood.StatusPending, blood.Routine),
		req(blood.BPos, blood.StatusPending, blood.Emergency),
	}

	byStatus := RequestsByStatus(reqs)
	assert.Equal(t, []StatusCount{
		{blood.StatusPending, 2},
		{blood.StatusFulfilled, 1},
	}, byStatus, "solo estados presentes, en orden canónico")

	byUrgency := RequestsByUrgency(reqs)
	assert.Equal(t, []UrgencyCount{
		{blood.Routine, 1},
		{blood.Emergency, 2},
	}, byUrgency, "severidad ascendente")
}

func TestViews_Idempotencia(t *testing.T) {
	rows := []*entity.InventoryRow{
		row(blood.ONeg, blood.Platelets, "center_3", 2),
		row(blood.APos, blood.Plasma, "center_1", 7),
	}

	first := UnitsByTypeComponent(rows)
	second := UnitsByTypeComponent(rows)
	assert.Equal(t, first, second, "misma entrada, salida idéntica")

	require.Equal(t, UnitsByLocation(rows), UnitsByLocation(rows))
}

func TestViews_EntradaVacia(t *testing.T) {
	assert.Empty(t, UnitsByTypeComponent(nil))
	assert.Empty(t, UnitsByLocation(nil))
	assert.Empty(t, RequestsByStatus(nil))
	assert.Empty(t, RequestsByUrgency(nil))
}
