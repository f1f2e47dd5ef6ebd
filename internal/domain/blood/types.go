// Package blood define el vocabulario canónico del banco de sangre:
// tipos de sangre, componentes, urgencias y estados de solicitud.
// Todo orden determinista del sistema se deriva de los índices de este paquete.
package blood

// Type es un tipo de sangre ABO/Rh canónico, ej. "A+", "O-".
type Type string

// Tipos de sangre en orden canónico. Ese orden define el orden de salida
// de snapshots, vistas agregadas y desempates en alertas.
const (
	APos  Type = "A+"
	ANeg  Type = "A-"
	BPos  Type = "B+"
	BNeg  Type = "B-"
	ABPos Type = "AB+"
	ABNeg Type = "AB-"
	OPos  Type = "O+"
	ONeg  Type = "O-"
)

var typeOrder = []Type{APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg}

var typeIndex = func() map[Type]int {
	m := make(map[Type]int, len(typeOrder))
	for i, t := range typeOrder {
		m[t] = i
	}
	return m
}()

// Types devuelve los ocho tipos en orden canónico.
func Types() []Type {
	out := make([]Type, len(typeOrder))
	copy(out, typeOrder)
	return out
}

// ParseType valida que s sea un tipo canónico exacto.
func ParseType(s string) (Type, bool) {
	t := Type(s)
	_, ok := typeIndex[t]
	return t, ok
}

// Index devuelve la posición canónica del tipo, o -1 si no es canónico.
func (t Type) Index() int {
	if i, ok := typeIndex[t]; ok {
		return i
	}
	return -1
}

// Component es un componente sanguíneo procesado a partir de una donación.
type Component string

const (
	WholeBlood Component = "whole_blood"
	Plasma     Component = "plasma"
	Platelets  Component = "platelets"
)

var componentOrder = []Component{WholeBlood, Plasma, Platelets}

var componentIndex = func() map[Component]int {
	m := make(map[Component]int, len(componentOrder))
	for i, c := range componentOrder {
		m[c] = i
	}
	return m
}()

// Components devuelve los componentes en orden canónico.
func Components() []Component {
	out := make([]Component, len(componentOrder))
	copy(out, componentOrder)
	return out
}

// ParseComponent valida que s sea un componente canónico exacto.
func ParseComponent(s string) (Component, bool) {
	c := Component(s)
	_, ok := componentIndex[c]
	return c, ok
}

// Index devuelve la posición canónica del componente, o -1 si no es canónico.
func (c Component) Index() int {
	if i, ok := componentIndex[c]; ok {
		return i
	}
	return -1
}

// ShelfLifeDays devuelve la vida útil en días del componente.
// Sangre total 42, plasma 365, plaquetas 5. Lo usa el generador de fixtures;
// el motor no lo impone (la vigencia se evalúa contra expiry_date).
func ShelfLifeDays(c Component) int {
	switch c {
	case Plasma:
		return 365
	case Platelets:
		return 5
	default:
		return 42
	}
}

// Urgency es la urgencia de una solicitud hospitalaria.
type Urgency string

const (
	Routine   Urgency = "routine"
	Urgent    Urgency = "urgent"
	Emergency Urgency = "emergency"
)

var urgencyOrder = []Urgency{Routine, Urgent, Emergency}

var urgencyRank = map[Urgency]int{Routine: 0, Urgent: 1, Emergency: 2}

// Urgencies devuelve las urgencias en orden ascendente de severidad.
func Urgencies() []Urgency {
	out := make([]Urgency, len(urgencyOrder))
	copy(out, urgencyOrder)
	return out
}

// ParseUrgency valida que s sea una urgencia canónica.
func ParseUrgency(s string) (Urgency, bool) {
	u := Urgency(s)
	_, ok := urgencyRank[u]
	return u, ok
}

// Rank devuelve la severidad (routine < urgent < emergency), o -1 si no es canónica.
func (u Urgency) Rank() int {
	if r, ok := urgencyRank[u]; ok {
		return r
	}
	return -1
}

// RequestStatus es el estado del ciclo de vida de una solicitud hospitalaria.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusFulfilled RequestStatus = "fulfilled"
	StatusCancelled RequestStatus = "cancelled"
)

var statusOrder = []RequestStatus{StatusPending, StatusFulfilled, StatusCancelled}

var statusIndex = map[RequestStatus]int{StatusPending: 0, StatusFulfilled: 1, StatusCancelled: 2}

// Statuses devuelve los estados en orden canónico.
func Statuses() []RequestStatus {
	out := make([]RequestStatus, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// ParseStatus valida que s sea un estado canónico.
func ParseStatus(s string) (RequestStatus, bool) {
	st := RequestStatus(s)
	_, ok := statusIndex[st]
	return st, ok
}

// Index devuelve la posición canónica del estado, o -1 si no es canónico.
func (s RequestStatus) Index() int {
	if i, ok := statusIndex[s]; ok {
		return i
	}
	return -1
}

// IsTerminal indica si el estado no admite más transiciones (fulfilled, cancelled).
func (s RequestStatus) IsTerminal() bool {
	return s == StatusFulfilled || s == StatusCancelled
}
