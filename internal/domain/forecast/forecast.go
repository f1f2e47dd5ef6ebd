// Package forecast construye la serie diaria de demanda hospitalaria y su
// proyección de corto plazo: media móvil simple de cola sobre la serie
// reindexada (los días sin solicitudes son ceros explícitos) y extensión
// plana de N días al último valor de la media.
package forecast

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hemovital/hemostock-api/internal/domain"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// Window es el ancho máximo de la media móvil, en días.
// En el día k (0-indexado desde el inicio de la serie) la media cubre
// exactamente min(k+1, Window) días.
const Window = 7

// Point es un día de la serie: demanda observada y media móvil.
// Actual es nil en los días proyectados.
type Point struct {
	Date      time.Time
	Actual    *int
	MovingAvg decimal.Decimal
	Projected bool
}

// Series es la salida del motor: historia reindexada más proyección.
type Series struct {
	Points []Point
}

// IsEmpty indica que no hubo solicitudes que graficar (señal de sin-datos,
// nunca un error).
func (s Series) IsEmpty() bool { return len(s.Points) == 0 }

// DemandSeries agrega units_requested por día de request_date, opcionalmente
// filtrado por tipo y/o componente, reindexa al rango diario completo entre la
// primera y la última fecha observada, calcula la media móvil y proyecta
// horizonDays días planos al último valor de la media.
func DemandSeries(
	requests []*entity.HospitalRequest,
	bloodType *blood.Type,
	component *blood.Component,
	horizonDays int,
) (Series, error) {
	if horizonDays < 1 {
		return Series{}, domain.ErrInvalidHorizon
	}

	daily := make(map[time.Time]int)
	for _, r := range requests {
		if bloodType != nil && r.BloodType != *bloodType {
			continue
		}
		if component != nil && r.Component != *component {
			continue
		}
		d := r.RequestDate
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		daily[day] += r.UnitsRequested
	}
	if len(daily) == 0 {
		return Series{}, nil
	}

	days := make([]time.Time, 0, len(daily))
	for d := range daily {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	first, last := days[0], days[len(days)-1]
	span := int(last.Sub(first)/(24*time.Hour)) + 1

	actuals := make([]int, span)
	for i := 0; i < span; i++ {
		actuals[i] = daily[first.AddDate(0, 0, i)]
	}

	points := make([]Point, 0, span+horizonDays)
	sum := 0
	for k := 0; k < span; k++ {
		sum += actuals[k]
		w := k + 1
		if w > Window {
			w = Window
			sum -= actuals[k-Window]
		}
		ma := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(w)))

		actual := actuals[k]
		points = append(points, Point{
			Date:      first.AddDate(0, 0, k),
			Actual:    &actual,
			MovingAvg: ma,
		})
	}

	lastMA := points[len(points)-1].MovingAvg
	for i := 1; i <= horizonDays; i++ {
		points = append(points, Point{
			Date:      last.AddDate(0, 0, i),
			MovingAvg: lastMA,
			Projected: true,
		})
	}

	return Series{Points: points}, nil
}
