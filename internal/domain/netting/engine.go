// Package netting implementa el motor de neteo de inventario: donaciones
// vigentes menos demanda hospitalaria cumplida, con piso en cero, repartido
// entre ubicaciones activas por pesos proporcionales.
//
// El motor es puro y determinista: misma entrada, mismo snapshot byte a byte.
// La fecha de evaluación y la marca de tiempo de corrida son explícitas; aquí
// nunca se consulta el reloj.
package netting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hemovital/hemostock-api/internal/domain"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// Result es la salida de una corrida: snapshot completo más los grupos que
// fallaron. Un grupo fallido no aborta el resto (resultado parcial).
type Result struct {
	Rows     []*entity.InventoryRow
	Failures []GroupFailure
}

// GroupFailure identifica un grupo (tipo, componente) que no pudo asignarse.
type GroupFailure struct {
	BloodType blood.Type
	Component blood.Component
	Err       error
}

type groupKey struct {
	bt   blood.Type
	comp blood.Component
}

// ComputeSnapshot corre el neteo completo.
//
//  1. Agrupa donaciones vigentes a evalDate por (tipo, componente) y suma unidades.
//  2. Agrupa solicitudes fulfilled por la misma llave y suma units_requested.
//  3. Neto = max(vigentes - cumplidas, 0).
//  4. Reparte el neto entre ubicaciones activas según pesos (ver Allocate).
//  5. Emite una fila por (tipo, componente, ubicación) para todo grupo con
//     donaciones vigentes, incluidos los de neto cero.
//
// Invariante de conservación por grupo: la suma de units_available de sus
// filas es exactamente max(vigentes - cumplidas, 0).
func ComputeSnapshot(
	donations []*entity.Donation,
	requests []*entity.HospitalRequest,
	locations []*entity.StorageLocation,
	evalDate time.Time,
	runTime time.Time,
) Result {
	totalValid := make(map[groupKey]int)
	for _, d := range donations {
		if !d.ValidAt(evalDate) {
			continue
		}
		totalValid[groupKey{d.BloodType, d.Component}] += d.Units
	}

	fulfilled := make(map[groupKey]int)
	for _, r := range requests {
		if r.Status != blood.StatusFulfilled {
			continue
		}
		fulfilled[groupKey{r.BloodType, r.Component}] += r.UnitsRequested
	}

	// Ubicaciones activas en orden ascendente de id: el orden de reparto del
	// remanente y el orden de filas dependen de esto.
	active := make([]*entity.StorageLocation, 0, len(locations))
	for _, l := range locations {
		if l.Active {
			active = append(active, l)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	weights := make([]decimal.Decimal, len(active))
	for i, l := range active {
		weights[i] = l.Weight
	}

	keys := make([]groupKey, 0, len(totalValid))
	for k := range totalValid {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].bt != keys[j].bt {
			return keys[i].bt.Index() < keys[j].bt.Index()
		}
		return keys[i].comp.Index() < keys[j].comp.Index()
	})

	var res Result
	for _, k := range keys {
		if len(active) == 0 {
			res.Failures = append(res.Failures, GroupFailure{
				BloodType: k.bt,
				Component: k.comp,
				Err:       &domain.NoLocationConfiguredError{BloodType: k.bt, Component: k.comp},
			})
			continue
		}

		net := totalValid[k] - fulfilled[k]
		if net < 0 {
			net = 0
		}

		alloc := Allocate(net, weights)
		for i, l := range active {
			res.Rows = append(res.Rows, &entity.InventoryRow{
				BloodType:      k.bt,
				Component:      k.comp,
				Location:       l.ID,
				UnitsAvailable: alloc[i],
				LastUpdated:    runTime,
			})
		}
	}
	return res
}

// Allocate reparte net unidades enteras en proporción a los pesos dados.
//
// Cada posición recibe floor(net * w_i / Σw); el remanente se entrega de a una
// unidad empezando por la primera posición (las posiciones llegan ordenadas
// por id ascendente). Pesos negativos cuentan como cero; si la suma de pesos
// es cero, el reparto es uniforme. La suma del resultado es siempre net.
func Allocate(net int, weights []decimal.Decimal) []int {
	n := len(weights)
	if n == 0 {
		return nil
	}

	effective := make([]decimal.Decimal, n)
	sumW := decimal.Zero
	for i, w := range weights {
		if w.IsNegative() {
			w = decimal.Zero
		}
		effective[i] = w
		sumW = sumW.Add(w)
	}
	if sumW.IsZero() {
		one := decimal.NewFromInt(1)
		for i := range effective {
			effective[i] = one
		}
		sumW = decimal.NewFromInt(int64(n))
	}

	netD := decimal.NewFromInt(int64(net))
	alloc := make([]int, n)
	assigned := 0
	for i, w := range effective {
		// QuoRem con precisión 0 es división entera exacta; evita el floor
		// sobre un cociente redondeado.
		q, _ := netD.Mul(w).QuoRem(sumW, 0)
		alloc[i] = int(q.IntPart())
		assigned += alloc[i]
	}

	// El remanente es siempre menor que n: una unidad por posición alcanza.
	rem := net - assigned
	for i := 0; rem > 0; i, rem = i+1, rem-1 {
		alloc[i]++
	}
	return alloc
}
