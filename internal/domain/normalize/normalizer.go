// Package normalize convierte filas crudas (campos string, tal como llegan de
// CSV o XLSX) en entidades tipadas del dominio. La normalización falla cerrada:
// el primer registro inválido aborta el lote completo de su tabla, sin coerción
// silenciosa ni descarte de filas.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/hemovital/hemostock-api/internal/domain"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// DateLayout es el único formato de fecha aceptado en archivos de entrada.
const DateLayout = "2006-01-02"

// Nombres de tabla usados como contexto en los errores de validación.
const (
	TableDonors    = "donors"
	TableDonations = "donations"
	TableRequests  = "hospital_requests"
)

// Contratos de columnas de los archivos de entrada, en orden. Los adaptadores
// de fuente (CSV, XLSX) validan el encabezado contra estas listas antes de
// entregar filas.
var (
	DonorColumns = []string{
		"donor_id", "name", "dob", "blood_type", "contact",
	}
	DonationColumns = []string{
		"donation_id", "donor_id", "blood_type", "component",
		"donation_date", "expiry_date", "units", "qc_pass",
	}
	RequestColumns = []string{
		"request_id", "hospital", "blood_type", "component", "units_requested",
		"request_date", "urgency", "status", "fulfilled_date",
	}
)

// RawDonor es una fila cruda de donors.csv.
type RawDonor struct {
	ID        string
	Name      string
	DOB       string
	BloodType string
	Contact   string
}

// RawDonation es una fila cruda de donations.csv.
type RawDonation struct {
	ID           string
	DonorID      string
	BloodType    string
	Component    string
	DonationDate string
	ExpiryDate   string
	Units        string
	QCPass       string
}

// RawRequest es una fila cruda de hospital_requests.csv.
// FulfilledDate puede venir vacío.
type RawRequest struct {
	ID             string
	Hospital       string
	BloodType      string
	Component      string
	UnitsRequested string
	RequestDate    string
	Urgency        string
	Status         string
	FulfilledDate  string
}

// Donors normaliza el lote de donantes.
func Donors(rows []RawDonor) ([]*entity.Donor, error) {
	out := make([]*entity.Donor, 0, len(rows))
	for i, r := range rows {
		n := i + 1

		id, err := requiredText(TableDonors, n, "donor_id", r.ID)
		if err != nil {
			return nil, err
		}
		name, err := requiredText(TableDonors, n, "name", r.Name)
		if err != nil {
			return nil, err
		}
		dob, err := parseDate(TableDonors, n, "dob", r.DOB)
		if err != nil {
			return nil, err
		}
		bt, err := parseBloodType(TableDonors, n, r.BloodType)
		if err != nil {
			return nil, err
		}

		out = append(out, &entity.Donor{
			ID:        id,
			Name:      name,
			DOB:       dob,
			BloodType: bt,
			Contact:   strings.TrimSpace(r.Contact),
		})
	}
	return out, nil
}

// Donations normaliza el lote de donaciones.
// Invariante verificado: expiry_date estrictamente posterior a donation_date.
func Donations(rows []RawDonation) ([]*entity.Donation, error) {
	out := make([]*entity.Donation, 0, len(rows))
	for i, r := range rows {
		n := i + 1

		id, err := requiredText(TableDonations, n, "donation_id", r.ID)
		if err != nil {
			return nil, err
		}
		donorID, err := requiredText(TableDonations, n, "donor_id", r.DonorID)
		if err != nil {
			return nil, err
		}
		bt, err := parseBloodType(TableDonations, n, r.BloodType)
		if err != nil {
			return nil, err
		}
		comp, err := parseComponent(TableDonations, n, r.Component)
		if err != nil {
			return nil, err
		}
		donated, err := parseDate(TableDonations, n, "donation_date", r.DonationDate)
		if err != nil {
			return nil, err
		}
		expiry, err := parseDate(TableDonations, n, "expiry_date", r.ExpiryDate)
		if err != nil {
			return nil, err
		}
		if !expiry.After(donated) {
			return nil, &domain.InvalidValueError{
				Table: TableDonations, Row: n, Field: "expiry_date",
				Value:  strings.TrimSpace(r.ExpiryDate),
				Reason: "debe ser posterior a donation_date",
			}
		}
		units, err := parseUnits(TableDonations, n, "units", r.Units)
		if err != nil {
			return nil, err
		}
		qc, perr := strconv.ParseBool(strings.TrimSpace(r.QCPass))
		if perr != nil {
			return nil, &domain.InvalidValueError{
				Table: TableDonations, Row: n, Field: "qc_pass",
				Value: strings.TrimSpace(r.QCPass), Reason: "booleano no reconocido",
			}
		}

		out = append(out, &entity.Donation{
			ID:           id,
			DonorID:      donorID,
			BloodType:    bt,
			Component:    comp,
			DonationDate: donated,
			ExpiryDate:   expiry,
			Units:        units,
			QCPass:       qc,
		})
	}
	return out, nil
}

// Requests normaliza el lote de solicitudes hospitalarias.
// fulfilled_date se exige cuando status == fulfilled y debe ser >= request_date;
// si viene en una fila no-fulfilled, se limpia a ausente.
func Requests(rows []RawRequest) ([]*entity.HospitalRequest, error) {
	out := make([]*entity.HospitalRequest, 0, len(rows))
	for i, r := range rows {
		n := i + 1

		id, err := requiredText(TableRequests, n, "request_id", r.ID)
		if err != nil {
			return nil, err
		}
		hospital, err := requiredText(TableRequests, n, "hospital", r.Hospital)
		if err != nil {
			return nil, err
		}
		bt, err := parseBloodType(TableRequests, n, r.BloodType)
		if err != nil {
			return nil, err
		}
		comp, err := parseComponent(TableRequests, n, r.Component)
		if err != nil {
			return nil, err
		}
		units, err := parseUnits(TableRequests, n, "units_requested", r.UnitsRequested)
		if err != nil {
			return nil, err
		}
		reqDate, err := parseDate(TableRequests, n, "request_date", r.RequestDate)
		if err != nil {
			return nil, err
		}
		urg, ok := blood.ParseUrgency(strings.TrimSpace(r.Urgency))
		if !ok {
			return nil, &domain.InvalidValueError{
				Table: TableRequests, Row: n, Field: "urgency", Value: strings.TrimSpace(r.Urgency),
			}
		}
		status, ok := blood.ParseStatus(strings.TrimSpace(r.Status))
		if !ok {
			return nil, &domain.InvalidValueError{
				Table: TableRequests, Row: n, Field: "status", Value: strings.TrimSpace(r.Status),
			}
		}

		var fulfilled *time.Time
		rawFulfilled := strings.TrimSpace(r.FulfilledDate)
		if status == blood.StatusFulfilled {
			fd, err := parseDate(TableRequests, n, "fulfilled_date", rawFulfilled)
			if err != nil {
				return nil, err
			}
			if fd.Before(reqDate) {
				return nil, &domain.InvalidValueError{
					Table: TableRequests, Row: n, Field: "fulfilled_date",
					Value: rawFulfilled, Reason: "anterior a request_date",
				}
			}
			fulfilled = &fd
		}

		out = append(out, &entity.HospitalRequest{
			ID:             id,
			Hospital:       hospital,
			BloodType:      bt,
			Component:      comp,
			UnitsRequested: units,
			RequestDate:    reqDate,
			Urgency:        urg,
			Status:         status,
			FulfilledDate:  fulfilled,
		})
	}
	return out, nil
}

// ── Helpers de parseo ─────────────────────────────────────────────────────────

func requiredText(table string, row int, field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", &domain.InvalidValueError{
			Table: table, Row: row, Field: field, Value: "", Reason: "campo requerido",
		}
	}
	return v, nil
}

func parseDate(table string, row int, field, value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, &domain.MalformedDateError{Table: table, Row: row, Field: field, Value: v}
	}
	return t, nil
}

func parseUnits(table string, row int, field, value string) (int, error) {
	v := strings.TrimSpace(value)
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &domain.InvalidQuantityError{Table: table, Row: row, Field: field, Value: v}
	}
	return n, nil
}

func parseBloodType(table string, row int, value string) (blood.Type, error) {
	v := strings.TrimSpace(value)
	bt, ok := blood.ParseType(v)
	if !ok {
		return "", &domain.InvalidValueError{Table: table, Row: row, Field: "blood_type", Value: v}
	}
	return bt, nil
}

func parseComponent(table string, row int, value string) (blood.Component, error) {
	v := strings.TrimSpace(value)
	c, ok := blood.ParseComponent(v)
	if !ok {
		return "", &domain.InvalidValueError{Table: table, Row: row, Field: "component", Value: v}
	}
	return c, nil
}
