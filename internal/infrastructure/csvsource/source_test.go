package csvsource_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemovital/hemostock-api/internal/infrastructure/csvsource"
)

const (
	donorsCSV = "donor_id,name,dob,blood_type,contact\n" +
		"D00001,Ana Pérez,1990-04-12,O+,ana@example.com\n" +
		"D00002,\"Ruiz, Marta\",1985-11-30,AB-,\n"

	donationsCSV = "donation_id,donor_id,blood_type,component,donation_date,expiry_date,units,qc_pass\n" +
		"DN000001,D00001,O+,whole_blood,2024-01-10,2024-02-21,2,true\n"

	requestsCSV = "request_id,hospital,blood_type,component,units_requested,request_date,urgency,status,fulfilled_date\n" +
		"R00001,hospital_3,O+,whole_blood,1,2024-01-12,urgent,fulfilled,2024-01-13\n" +
		"R00002,hospital_1,AB-,plasma,2,2024-01-14,routine,pending,\n"
)

func TestSource_LeeLasTresTablas(t *testing.T) {
	src := csvsource.NewReaders(
		strings.NewReader(donorsCSV),
		strings.NewReader(donationsCSV),
		strings.NewReader(requestsCSV),
		false,
	)

	donors, err := src.Donors()
	require.NoError(t, err)
	require.Len(t, donors, 2)
	assert.Equal(t, "D00001", donors[0].ID)
	assert.Equal(t, "Ruiz, Marta", donors[1].Name, "las comillas CSV deben preservar la coma interna")

	donations, err := src.Donations()
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, "whole_blood", donations[0].Component)
	assert.Equal(t, "true", donations[0].QCPass)

	requests, err := src.Requests()
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "2024-01-13", requests[0].FulfilledDate)
	assert.Empty(t, requests[1].FulfilledDate)
}

func TestSource_RechazaEncabezadoConColumnaIncorrecta(t *testing.T) {
	bad := "donor_id,nombre,dob,blood_type,contact\n" +
		"D00001,Ana,1990-04-12,O+,\n"
	src := csvsource.NewReaders(
		strings.NewReader(bad),
		strings.NewReader(donationsCSV),
		strings.NewReader(requestsCSV),
		false,
	)

	_, err := src.Donors()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name"`, "el error debe nombrar la columna esperada")
}

func TestSource_SoloEncabezadoProduceTablaVacia(t *testing.T) {
	header := "donation_id,donor_id,blood_type,component,donation_date,expiry_date,units,qc_pass\n"
	src := csvsource.NewReaders(
		strings.NewReader(donorsCSV),
		strings.NewReader(header),
		strings.NewReader(requestsCSV),
		false,
	)

	donations, err := src.Donations()
	require.NoError(t, err)
	assert.Empty(t, donations)
}

func TestSource_AceptaEncabezadoConBOM(t *testing.T) {
	src := csvsource.NewReaders(
		strings.NewReader("\uFEFF"+donorsCSV),
		strings.NewReader(donationsCSV),
		strings.NewReader(requestsCSV),
		false,
	)

	donors, err := src.Donors()
	require.NoError(t, err)
	assert.Len(t, donors, 2)
}

func TestSource_DecodificaLatin1(t *testing.T) {
	latin1 := []byte("donor_id,name,dob,blood_type,contact\n" +
		"D00001,Jos\xe9 Mar\xeda,1990-04-12,O+,\n")
	src := csvsource.NewReaders(
		bytes.NewReader(latin1),
		strings.NewReader(donationsCSV),
		strings.NewReader(requestsCSV),
		true,
	)

	donors, err := src.Donors()
	require.NoError(t, err)
	require.Len(t, donors, 1)
	assert.Equal(t, "José María", donors[0].Name)
}

func TestSource_RechazaFilaConCamposDeMas(t *testing.T) {
	bad := donorsCSV + "D00003,Luis,1970-01-01,B+,x@example.com,extra\n"
	src := csvsource.NewReaders(
		strings.NewReader(bad),
		strings.NewReader(donationsCSV),
		strings.NewReader(requestsCSV),
		false,
	)

	_, err := src.Donors()
	require.Error(t, err, "una fila con más campos que el encabezado debe rechazarse")
}
