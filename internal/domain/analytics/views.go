// Package analytics contiene las vistas agregadas y las alertas operativas
// que se derivan del snapshot de inventario y de las solicitudes. Todas las
// funciones son puras y de salida determinista: correr dos veces sobre la
// misma entrada produce resultados idénticos byte a byte.
package analytics

import (
	"sort"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// TypeComponentUnits es una celda de la vista unidades por (tipo, componente).
type TypeComponentUnits struct {
	BloodType blood.Type
	Component blood.Component
	Units     int
}

// LocationUnits es una celda de la vista unidades por ubicación.
type LocationUnits struct {
	Location string
	Units    int
}

// StatusCount es el conteo de solicitudes en un estado.
type StatusCount struct {
	Status blood.RequestStatus
	Count  int
}

// UrgencyCount es el conteo de solicitudes en una urgencia.
type UrgencyCount struct {
	Urgency blood.Urgency
	Count   int
}

// UnitsByTypeComponent agrupa el snapshot por (tipo, componente), en orden
// canónico. Solo aparecen las llaves presentes en el snapshot.
func UnitsByTypeComponent(rows []*entity.InventoryRow) []TypeComponentUnits {
	type key struct {
		bt   blood.Type
		comp blood.Component
	}
	totals := make(map[key]int)
	for _, r := range rows {
		totals[key{r.BloodType, r.Component}] += r.UnitsAvailable
	}

	out := make([]TypeComponentUnits, 0, len(totals))
	for k, units := range totals {
		out = append(out, TypeComponentUnits{BloodType: k.bt, Component: k.comp, Units: units})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BloodType != out[j].BloodType {
			return out[i].BloodType.Index() < out[j].BloodType.Index()
		}
		return out[i].Component.Index() < out[j].Component.Index()
	})
	return out
}

// UnitsByLocation agrupa el snapshot por ubicación, id ascendente.
func UnitsByLocation(rows []*entity.InventoryRow) []LocationUnits {
	totals := make(map[string]int)
	for _, r := range rows {
		totals[r.Location] += r.UnitsAvailable
	}

	out := make([]LocationUnits, 0, len(totals))
	for loc, units := range totals {
		out = append(out, LocationUnits{Location: loc, Units: units})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// RequestsByStatus cuenta solicitudes por estado, en orden canónico.
// Solo aparecen los estados presentes.
func RequestsByStatus(reqs []*entity.HospitalRequest) []StatusCount {
	counts := make(map[blood.RequestStatus]int)
	for _, r := range reqs {
		counts[r.Status]++
	}

	out := make([]StatusCount, 0, len(counts))
	for st, c := range counts {
		out = append(out, StatusCount{Status: st, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status.Index() < out[j].Status.Index() })
	return out
}

// RequestsByUrgency cuenta solicitudes por urgencia, de menor a mayor severidad.
// Solo aparecen las urgencias presentes.
func RequestsByUrgency(reqs []*entity.HospitalRequest) []UrgencyCount {
	counts := make(map[blood.Urgency]int)
	for _, r := range reqs {
		counts[r.Urgency]++
	}

	out := make([]UrgencyCount, 0, len(counts))
	for u, c := range counts {
		out = append(out, UrgencyCount{Urgency: u, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Urgency.Rank() < out[j].Urgency.Rank() })
	return out
}
