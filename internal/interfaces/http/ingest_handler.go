package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/application/etl"
	"github.com/hemovital/hemostock-api/internal/domain"
	"github.com/hemovital/hemostock-api/internal/infrastructure/csvsource"
	"github.com/hemovital/hemostock-api/internal/infrastructure/xlsxsource"
)

// IngestHandler expone la carga de lotes de registros por HTTP.
type IngestHandler struct {
	ingestUC *etl.IngestUseCase
}

// NewIngestHandler crea el handler de ingesta.
func NewIngestHandler(ingestUC *etl.IngestUseCase) *IngestHandler {
	return &IngestHandler{ingestUC: ingestUC}
}

// Upload godoc
// @Summary      Cargar lote de registros
// @Description  Reemplaza donantes, donaciones y solicitudes con el lote subido y recalcula el snapshot. Acepta un libro XLSX (campo workbook) o tres CSV (campos donors, donations y requests).
// @Tags         ingesta
// @Accept       multipart/form-data
// @Produce      json
// @Param        workbook         formData  file    false  "Libro XLSX con hojas donors, donations y requests"
// @Param        donors           formData  file    false  "CSV de donantes"
// @Param        donations        formData  file    false  "CSV de donaciones"
// @Param        requests         formData  file    false  "CSV de solicitudes hospitalarias"
// @Param        evaluation_date  formData  string  false  "Fecha de evaluación YYYY-MM-DD (hoy si se omite)"
// @Param        latin1           formData  string  false  "true para decodificar los CSV como ISO-8859-1"
// @Success      200  {object}  dto.IngestResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Security     Bearer
// @Router       /api/ingest [post]
func (h *IngestHandler) Upload(c *fiber.Ctx) error {
	evalDate, err := dateOrToday(c.FormValue("evaluation_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PARAM",
			Message: "evaluation_date debe ser YYYY-MM-DD",
		})
	}

	src, cleanup, err := h.openSource(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_FILE",
			Message: err.Error(),
		})
	}
	defer cleanup()

	result, err := h.ingestUC.LoadFromSource(c.Context(), src, evalDate)
	if err != nil {
		var srcErr *etl.SourceError
		if errors.As(err, &srcErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "INVALID_FILE",
				Message: err.Error(),
			})
		}
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: "no se pudo cargar el lote",
		})
	}

	return c.JSON(result)
}

// openSource arma la fuente de registros a partir del formulario multipart:
// un libro XLSX en el campo workbook, o los tres CSV donors, donations y
// requests. El cleanup cierra los archivos abiertos.
func (h *IngestHandler) openSource(c *fiber.Ctx) (etl.RecordSource, func(), error) {
	if wb, err := c.FormFile("workbook"); err == nil {
		if !strings.HasSuffix(strings.ToLower(wb.Filename), ".xlsx") {
			return nil, nil, fmt.Errorf("workbook debe ser un archivo .xlsx")
		}
		f, err := wb.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("abrir workbook: %w", err)
		}
		src, err := xlsxsource.NewFromReader(f)
		// excelize lee todo el contenido al abrir; el archivo ya no hace falta.
		_ = f.Close()
		if err != nil {
			return nil, nil, err
		}
		return src, func() { _ = src.Close() }, nil
	}

	latin1 := c.FormValue("latin1") == "true"

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	open := func(field string) (multipart.File, error) {
		fh, err := c.FormFile(field)
		if err != nil {
			return nil, fmt.Errorf("falta el archivo %s (o un workbook XLSX)", field)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", field, err)
		}
		opened = append(opened, f)
		return f, nil
	}

	donors, err := open("donors")
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	donations, err := open("donations")
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	requests, err := open("requests")
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return csvsource.NewReaders(donors, donations, requests, latin1), closeAll, nil
}
