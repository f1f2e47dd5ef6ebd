// Package csvsource lee los archivos CSV de entrada (donantes, donaciones y
// solicitudes hospitalarias) y los entrega como filas crudas listas para
// normalizar. El encabezado de cada archivo se valida contra el contrato de
// columnas del dominio antes de entregar una sola fila.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/hemovital/hemostock-api/internal/application/etl"
	"github.com/hemovital/hemostock-api/internal/domain/normalize"
)

// Nombres de archivo esperados para cada tabla.
const (
	DonorsFile    = "donors.csv"
	DonationsFile = "donations.csv"
	RequestsFile  = "hospital_requests.csv"
)

var _ etl.RecordSource = (*Source)(nil)

// Source implementa etl.RecordSource leyendo archivos CSV. Las tres tablas
// son obligatorias: la carga reemplaza tablas completas, así que aceptar un
// subconjunto dejaría las demás vacías sin que nadie lo pida.
type Source struct {
	open   func(name string) (io.ReadCloser, error)
	latin1 bool
}

// NewDir construye una fuente que lee los archivos desde un directorio.
// Con latin1 en true el contenido se decodifica desde ISO-8859-1, el
// encoding habitual de los exportes de sistemas hospitalarios viejos.
func NewDir(dir string, latin1 bool) *Source {
	return &Source{
		open: func(name string) (io.ReadCloser, error) {
			return os.Open(filepath.Join(dir, name))
		},
		latin1: latin1,
	}
}

// NewReaders construye una fuente desde readers ya abiertos, por ejemplo los
// archivos de un upload multipart. Los tres readers son obligatorios.
func NewReaders(donors, donations, requests io.Reader, latin1 bool) *Source {
	files := map[string]io.Reader{
		DonorsFile:    donors,
		DonationsFile: donations,
		RequestsFile:  requests,
	}
	return &Source{
		open: func(name string) (io.ReadCloser, error) {
			r, ok := files[name]
			if !ok || r == nil {
				return nil, fmt.Errorf("csv: falta el archivo %s", name)
			}
			return io.NopCloser(r), nil
		},
		latin1: latin1,
	}
}

// Donors lee donors.csv.
func (s *Source) Donors() ([]normalize.RawDonor, error) {
	records, err := s.read(DonorsFile, normalize.DonorColumns)
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

// Donations lee donations.csv.
func (s *Source) Donations() ([]normalize.RawDonation, error) {
	records, err := s.read(DonationsFile, normalize.DonationColumns)
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

// Requests lee hospital_requests.csv.
func (s *Source) Requests() ([]normalize.RawRequest, error) {
	records, err := s.read(RequestsFile, normalize.RequestColumns)
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

// read abre el archivo, valida el encabezado y devuelve solo las filas de
// datos. Un archivo vacío o con solo encabezado produce cero filas sin error:
// tabla vacía es un estado válido, no una falla.
func (s *Source) read(name string, columns []string) ([][]string, error) {
	f, err := s.open(name)
	if err != nil {
		return nil, fmt.Errorf("csv: abrir %s: %w", name, err)
	}
	defer f.Close()

	var r io.Reader = f
	if s.latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: leer %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if err := checkHeader(name, records[0], columns); err != nil {
		return nil, err
	}
	return records[1:], nil
}

// checkHeader exige las columnas esperadas, en orden y sin extras. La
// comparación ignora mayúsculas; la primera columna puede traer BOM de
// exportes UTF-8 de Excel.
func checkHeader(name string, header, want []string) error {
	if len(header) != len(want) {
		return fmt.Errorf("csv: %s: encabezado con %d columnas, se esperaban %d", name, len(header), len(want))
	}
	for i, col := range want {
		got := strings.TrimSpace(header[i])
		if i == 0 {
			got = strings.TrimPrefix(got, "\uFEFF")
		}
		if !strings.EqualFold(got, col) {
			return fmt.Errorf("csv: %s: columna %d debe ser %q, llegó %q", name, i+1, col, header[i])
		}
	}
	return nil
}
