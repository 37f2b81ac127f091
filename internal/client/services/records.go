package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"github.com/manuelmariscal/coursera/internal/client/client"
	"github.com/manuelmariscal/coursera/internal/client/models"
	"github.com/manuelmariscal/coursera/internal/common"
	"github.com/manuelmariscal/coursera/internal/logging"
)

const (
	opSearchFichas = "fichas.search"
	opSearchMotos  = "motos.search"

	exportSheet = "Fichas"
)

// RecordsAPI is the part of the backend client the records service needs.
type RecordsAPI interface {
	client.FichaAPI
	client.MotoAPI
}

// RecordsService wraps record and motorcycle calls with submit-time
// validation, staleness-guarded searches and spreadsheet export.
type RecordsService struct {
	api      RecordsAPI
	guard    *LatestGuard
	validate *validator.Validate
	logger   logging.Logger
}

func NewRecordsService(api RecordsAPI, logger logging.Logger) *RecordsService {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &RecordsService{
		api:      api,
		guard:    NewLatestGuard(),
		validate: v,
		logger:   logger.With("component", "records"),
	}
}

// Search lists all records for an empty term and otherwise searches by
// nombre and apellido. A call overtaken by a newer Search returns
// ErrSuperseded instead of its result.
func (s *RecordsService) Search(ctx context.Context, term string) ([]models.Ficha, error) {
	isLatest := s.guard.Begin(opSearchFichas)

	var (
		items []models.Ficha
		err   error
	)
	if term = strings.TrimSpace(term); term == "" {
		items, err = s.api.GetAllFichas(ctx)
	} else {
		items, err = s.api.SearchFichas(ctx, term, term)
	}

	if !isLatest() {
		s.logger.Debug(ctx, "discarding stale search", "term", term)
		return nil, ErrSuperseded
	}
	return items, err
}

// SearchMotos is Search for motorcycles, by plate or owner.
func (s *RecordsService) SearchMotos(ctx context.Context, placa, propietario string) ([]models.Moto, error) {
	isLatest := s.guard.Begin(opSearchMotos)

	var (
		items []models.Moto
		err   error
	)
	placa, propietario = strings.TrimSpace(placa), strings.TrimSpace(propietario)
	if placa == "" && propietario == "" {
		items, err = s.api.GetAllMotos(ctx)
	} else {
		items, err = s.api.SearchMotos(ctx, placa, propietario)
	}

	if !isLatest() {
		return nil, ErrSuperseded
	}
	return items, err
}

// Create checks required fields before sending the record.
func (s *RecordsService) Create(ctx context.Context, f models.Ficha) (*models.CreatedFicha, error) {
	if err := s.check(f); err != nil {
		return nil, err
	}
	return s.api.CreateFicha(ctx, f)
}

// CreateMoto checks required fields before sending the motorcycle.
func (s *RecordsService) CreateMoto(ctx context.Context, m models.Moto) (*models.Moto, error) {
	if err := s.check(m); err != nil {
		return nil, err
	}
	return s.api.CreateMoto(ctx, m)
}

// UpdateMoto checks required fields before sending the motorcycle.
func (s *RecordsService) UpdateMoto(ctx context.Context, id string, m models.Moto) (*models.Moto, error) {
	if err := s.check(m); err != nil {
		return nil, err
	}
	return s.api.UpdateMoto(ctx, id, m)
}

func (s *RecordsService) BulkDelete(ctx context.Context, ids []string, credential string) (*client.BulkResult, error) {
	return s.api.BulkDeleteFichas(ctx, ids, credential)
}

func (s *RecordsService) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return fmt.Errorf("%w: required fields missing: %s", common.ErrInvalidInput, strings.Join(missing, ", "))
}

var exportHeader = []any{
	"ID", "Nombre", "Apellido", "Tipo de sangre", "Contacto de emergencia",
	"Número de contacto", "Alergias", "Medicaciones", "Foto", "Fecha de registro",
}

// Export writes every record to w as an XLSX workbook, one row per record,
// and returns the number of rows written.
func (s *RecordsService) Export(ctx context.Context, w io.Writer) (int, error) {
	fichas, err := s.api.GetAllFichas(ctx)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	header := exportHeader
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}

	for i, fi := range fichas {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, fmt.Errorf("export: %w", err)
		}
		row := []any{
			fi.ID.String(), fi.Nombre, fi.Apellido, fi.TipoSangre, fi.ContactoEmergencia,
			fi.NumeroContacto, fi.Alergias, fi.Medicaciones, fi.FotoURL, fi.FechaRegistro,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return 0, fmt.Errorf("export: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	s.logger.Info(ctx, "exported records", "count", len(fichas))
	return len(fichas), nil
}
