package analytics

import (
	"sort"
	"time"

	"github.com/hemovital/hemostock-api/internal/domain"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// LowStockAlert marca un tipo de sangre cuyo total disponible (todas las
// ubicaciones, todos los componentes) quedó por debajo del umbral.
type LowStockAlert struct {
	BloodType  blood.Type
	TotalUnits int
}

// LowStock evalúa el umbral sobre los tipos presentes en el snapshot.
// Umbral mínimo 1; un umbral menor es error del llamador. Salida ordenada por
// unidades ascendente (lo más crítico primero), desempate por orden canónico.
//
// Los tipos ausentes del snapshot no se reportan: sin filas no hay corrida
// que los respalde.
func LowStock(rows []*entity.InventoryRow, threshold int) ([]LowStockAlert, error) {
	if threshold < 1 {
		return nil, domain.ErrInvalidThreshold
	}

	totals := make(map[blood.Type]int)
	for _, r := range rows {
		totals[r.BloodType] += r.UnitsAvailable
	}

	out := make([]LowStockAlert, 0)
	for bt, units := range totals {
		if units < threshold {
			out = append(out, LowStockAlert{BloodType: bt, TotalUnits: units})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalUnits != out[j].TotalUnits {
			return out[i].TotalUnits < out[j].TotalUnits
		}
		return out[i].BloodType.Index() < out[j].BloodType.Index()
	})
	return out, nil
}

// ExpiryRisk marca una fila del snapshot cuyo grupo tiene unidades venciendo
// dentro del horizonte.
//
// Aproximación asumida: el snapshot no conserva el linaje de donaciones, así
// que la fecha usada es la menor expiry_date entre las donaciones vigentes
// del mismo (tipo, componente). El riesgo real por unidad puede diferir.
type ExpiryRisk struct {
	BloodType      blood.Type
	Component      blood.Component
	Location       string
	UnitsAvailable int
	ExpiryDate     time.Time
	DaysToExpiry   int
}

// NearExpiry evalúa el horizonte de vencimiento sobre el snapshot.
// Se marcan filas con unidades cuando 0 <= días al vencimiento <= horizonDays.
// Filas sin donación vigente que las respalde quedan fuera. Salida ordenada
// por días ascendente, luego orden canónico y ubicación.
func NearExpiry(
	rows []*entity.InventoryRow,
	donations []*entity.Donation,
	evalDate time.Time,
	horizonDays int,
) ([]ExpiryRisk, error) {
	if horizonDays < 1 {
		return nil, domain.ErrInvalidHorizon
	}

	type key struct {
		bt   blood.Type
		comp blood.Component
	}

	// Menor expiry_date por grupo entre donaciones vigentes a evalDate.
	nearest := make(map[key]time.Time)
	for _, d := range donations {
		if !d.ValidAt(evalDate) {
			continue
		}
		k := key{d.BloodType, d.Component}
		if cur, ok := nearest[k]; !ok || d.ExpiryDate.Before(cur) {
			nearest[k] = d.ExpiryDate
		}
	}

	out := make([]ExpiryRisk, 0)
	for _, r := range rows {
		if r.UnitsAvailable == 0 {
			continue // sin unidades no hay nada en riesgo
		}
		expiry, ok := nearest[key{r.BloodType, r.Component}]
		if !ok {
			continue
		}
		days := int(expiry.Sub(evalDate) / (24 * time.Hour))
		if days < 0 || days > horizonDays {
			continue
		}
		out = append(out, ExpiryRisk{
			BloodType:      r.BloodType,
			Component:      r.Component,
			Location:       r.Location,
			UnitsAvailable: r.UnitsAvailable,
			ExpiryDate:     expiry,
			DaysToExpiry:   days,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysToExpiry != out[j].DaysToExpiry {
			return out[i].DaysToExpiry < out[j].DaysToExpiry
		}
		if out[i].BloodType != out[j].BloodType {
			return out[i].BloodType.Index() < out[j].BloodType.Index()
		}
		if out[i].Component != out[j].Component {
			return out[i].Component.Index() < out[j].Component.Index()
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}
