// Package xlsxsource lee un libro XLSX con las tres tablas de entrada como
// hojas (donors, donations, hospital_requests) y las entrega como filas
// crudas listas para normalizar.
package xlsxsource

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hemovital/hemostock-api/internal/application/etl"
	"github.com/hemovital/hemostock-api/internal/domain/normalize"
)

// Nombres de hoja esperados dentro del libro.
const (
	DonorsSheet    = "donors"
	DonationsSheet = "donations"
	RequestsSheet  = "hospital_requests"
)

var _ etl.RecordSource = (*Source)(nil)

// Source implementa etl.RecordSource leyendo un libro XLSX. Las celdas deben
// contener texto: una fecha guardada como fecha de Excel se renderiza según
// el formato de la celda y puede no cumplir el contrato YYYY-MM-DD.
type Source struct {
	file *excelize.File
}

// Open abre un libro desde disco.
func Open(path string) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir %s: %w", path, err)
	}
	return &Source{file: f}, nil
}

// NewFromReader abre un libro desde un reader, por ejemplo el archivo de un
// upload multipart.
func NewFromReader(r io.Reader) (*Source, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer libro: %w", err)
	}
	return &Source{file: f}, nil
}

// Close libera los recursos del libro.
func (s *Source) Close() error {
	return s.file.Close()
}

// Donors lee la hoja donors.
func (s *Source) Donors() ([]normalize.RawDonor, error) {
	records, err := s.sheet(DonorsSheet, normalize.DonorColumns)
	if err != nil {
		return nil, err
	}
	out := make([]normalize.RawDonor, 0, len(records))
	for _, rec := range records {
		out = append(out, normalize.RawDonor{
			ID:        rec[0],
			Name:      rec[1],
			DOB:       rec[2],
			BloodType: rec[3],
			Contact:   rec[4],
		})
	}
	return out, nil
}

// Donations lee la hoja donations.
func (s *Source) Donations() ([]normalize.RawDonation, error) {
	records, err := s.sheet(DonationsSheet, normalize.DonationColumns)
	if err != nil {
		return nil, err
	}
	out := make([]normalize.RawDonation, 0, len(records))
	for _, rec := range records {
		out = append(out, normalize.RawDonation{
			ID:           rec[0],
			DonorID:      rec[1],
			BloodType:    rec[2],
			Component:    rec[3],
			DonationDate: rec[4],
			ExpiryDate:   rec[5],
			Units:        rec[6],
			QCPass:       rec[7],
		})
	}
	return out, nil
}

// Requests lee la hoja hospital_requests.
func (s *Source) Requests() ([]normalize.RawRequest, error) {
	records, err := s.sheet(RequestsSheet, normalize.RequestColumns)
	if err != nil {
		return nil, err
	}
	out := make([]normalize.RawRequest, 0, len(records))
	for _, rec := range records {
		out = append(out, normalize.RawRequest{
			ID:             rec[0],
			Hospital:       rec[1],
			BloodType:      rec[2],
			Component:      rec[3],
			UnitsRequested: rec[4],
			RequestDate:    rec[5],
			Urgency:        rec[6],
			Status:         rec[7],
			FulfilledDate:  rec[8],
		})
	}
	return out, nil
}

// sheet lee una hoja, valida el encabezado y devuelve las filas de datos
// rellenadas al ancho del contrato. GetRows recorta las celdas vacías al
// final de cada fila, así que una fila corta se completa con "". Las filas
// totalmente vacías se descartan; una hoja vacía produce cero filas.
func (s *Source) sheet(name string, columns []string) ([][]string, error) {
	rows, err := s.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("xlsx: hoja %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if err := checkHeader(name, rows[0], columns); err != nil {
		return nil, err
	}

	out := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		if len(row) > len(columns) {
			return nil, fmt.Errorf("xlsx: %s: fila %d con %d celdas, se esperaban %d", name, i+2, len(row), len(columns))
		}
		padded := make([]string, len(columns))
		copy(padded, row)
		out = append(out, padded)
	}
	return out, nil
}

// checkHeader exige las columnas esperadas, en orden y sin extras.
func checkHeader(name string, header, want []string) error {
	if len(header) != len(want) {
		return fmt.Errorf("xlsx: %s: encabezado con %d columnas, se esperaban %d", name, len(header), len(want))
	}
	for i, col := range want {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return fmt.Errorf("xlsx: %s: columna %d debe ser %q, llegó %q", name, i+1, col, header[i])
		}
	}
	return nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
