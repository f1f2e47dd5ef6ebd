package xlsxsource_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hemovital/hemostock-api/internal/infrastructure/xlsxsource"
)

func TestSource_LeeLibroCompleto(t *testing.T) {
	src, err := xlsxsource.NewFromReader(buildWorkbook(t))
	require.NoError(t, err)
	defer src.Close()

	donors, err := src.Donors()
	require.NoError(t, err)
	require.Len(t, donors, 2)
	assert.Equal(t, "Ana Pérez", donors[0].Name)
	assert.Empty(t, donors[1].Contact, "la celda final vacía debe rellenarse con cadena vacía")

	donations, err := src.Donations()
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, "2024-02-21", donations[0].ExpiryDate)

	requests, err := src.Requests()
	require.NoError(t, err)
	assert.Empty(t, requests, "una hoja con solo encabezado produce tabla vacía")
}

func TestSource_RechazaEncabezadoInvalido(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "donors"))
	header := []any{"donor_id", "nombre", "dob", "blood_type", "contact"}
	require.NoError(t, f.SetSheetRow("donors", "A1", &header))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	src, err := xlsxsource.NewFromReader(buf)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Donors()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name"`)
}

func TestSource_HojaFaltante(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "donors"))
	header := []any{"donor_id", "name", "dob", "blood_type", "contact"}
	require.NoError(t, f.SetSheetRow("donors", "A1", &header))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	src, err := xlsxsource.NewFromReader(buf)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Donations()
	require.Error(t, err, "un libro sin la hoja donations debe rechazarse")
}

// ── helper ─────────────────────────────────────────────────────────────────────

// buildWorkbook arma un libro con las tres hojas: donors con una fila corta,
// donations con una donación y hospital_requests solo con encabezado.
func buildWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "donors"))
	_, err := f.NewSheet("donations")
	require.NoError(t, err)
	_, err = f.NewSheet("hospital_requests")
	require.NoError(t, err)

	donorRows := [][]any{
		{"donor_id", "name", "dob", "blood_type", "contact"},
		{"D00001", "Ana Pérez", "1990-04-12", "O+", "ana@example.com"},
		{"D00002", "Marta Ruiz", "1985-11-30", "AB-"},
	}
	writeRows(t, f, "donors", donorRows)

	donationRows := [][]any{
		{"donation_id", "donor_id", "blood_type", "component", "donation_date", "expiry_date", "units", "qc_pass"},
		{"DN000001", "D00001", "O+", "whole_blood", "2024-01-10", "2024-02-21", "2", "true"},
	}
	writeRows(t, f, "donations", donationRows)

	requestHeader := [][]any{
		{"request_id", "hospital", "blood_type", "component", "units_requested", "request_date", "urgency", "status", "fulfilled_date"},
	}
	writeRows(t, f, "hospital_requests", requestHeader)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func writeRows(t *testing.T, f *excelize.File, sheet string, rows [][]any) {
	t.Helper()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
}
