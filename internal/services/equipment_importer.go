package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"equipment-system/internal/dto"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/utils"
	"equipment-system/pkg/validation"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type EquipmentImportServiceInterface interface {
	ImportFromExcel(ctx context.Context, reader io.Reader) (*dto.ImportReportDTO, error)
}

type EquipmentImportService struct {
	equipmentService EquipmentServiceInterface
	validator        *validation.CustomValidator
	logger           *zap.Logger
}

func NewEquipmentImportService(
	equipmentService EquipmentServiceInterface,
	validator *validation.CustomValidator,
	logger *zap.Logger,
) EquipmentImportServiceInterface {
	return &EquipmentImportService{
		equipmentService: equipmentService,
		validator:        validator,
		logger:           logger,
	}
}

// Колонки книги сопоставляются по заголовкам первой строки, порядок
// колонок не важен. Обязателен только заголовок name.
var importColumns = map[string]struct{}{
	"name": {}, "description": {}, "equipment_type": {}, "ownership_type": {},
	"make": {}, "model": {}, "serial_number": {}, "year": {},
	"purchase_date": {}, "purchase_price": {}, "current_value": {}, "daily_rate": {},
	"location": {}, "notes": {},
}

// ImportFromExcel загружает парк оборудования из Excel-книги. Каждая
// строка обрабатывается независимо: ошибка в одной строке не
// останавливает загрузку остальных, итог приходит в отчёте.
func (s *EquipmentImportService) ImportFromExcel(ctx context.Context, reader io.Reader) (*dto.ImportReportDTO, error) {
	book, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, apperrors.NewValidationError("не удалось открыть Excel-файл", nil)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewValidationError("в книге нет ни одного листа", nil)
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewValidationError("не удалось прочитать лист "+sheets[0], nil)
	}
	if len(rows) < 2 {
		return nil, apperrors.NewValidationError("в книге нет строк данных", nil)
	}

	header := make(map[string]int)
	for idx, title := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(title))
		if _, ok := importColumns[name]; ok {
			header[name] = idx
		}
	}
	if _, ok := header["name"]; !ok {
		return nil, apperrors.NewValidationError("в заголовке книги отсутствует колонка name", nil)
	}

	report := &dto.ImportReportDTO{}
	for i, row := range rows[1:] {
		rowNum := i + 2

		payload, err := buildImportDTO(header, row)
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("строка %d: %v", rowNum, err))
			continue
		}
		if err := s.validator.Validate(payload); err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("строка %d: %v", rowNum, err))
			continue
		}
		if _, err := s.equipmentService.Register(ctx, *payload); err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("строка %d: %v", rowNum, err))
			continue
		}
		report.Imported++
	}

	s.logger.Info("импорт оборудования завершён",
		zap.Int("imported", report.Imported),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

func cellValue(header map[string]int, row []string, column string) string {
	idx, ok := header[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellValuePtr(header map[string]int, row []string, column string) *string {
	v := cellValue(header, row, column)
	if v == "" {
		return nil
	}
	return &v
}

func buildImportDTO(header map[string]int, row []string) (*dto.CreateEquipmentDTO, error) {
	payload := &dto.CreateEquipmentDTO{
		Name:          cellValue(header, row, "name"),
		Description:   cellValuePtr(header, row, "description"),
		EquipmentType: cellValue(header, row, "equipment_type"),
		OwnershipType: cellValue(header, row, "ownership_type"),
		Make:          cellValuePtr(header, row, "make"),
		Model:         cellValuePtr(header, row, "model"),
		SerialNumber:  cellValuePtr(header, row, "serial_number"),
		PurchaseDate:  cellValuePtr(header, row, "purchase_date"),
		Location:      cellValuePtr(header, row, "location"),
		Notes:         cellValuePtr(header, row, "notes"),
	}
	if payload.Name == "" {
		return nil, fmt.Errorf("пустое имя оборудования")
	}

	if v := cellValue(header, row, "year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("некорректный год: %s", v)
		}
		payload.Year = utils.ToPtr(year)
	}
	for column, target := range map[string]*float64{
		"purchase_price": &payload.PurchasePrice,
		"current_value":  &payload.CurrentValue,
		"daily_rate":     &payload.DailyRate,
	} {
		v := cellValue(header, row, column)
		if v == "" {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
		if err != nil {
			return nil, fmt.Errorf("некорректная сумма в колонке %s: %s", column, v)
		}
		*target = amount
	}
	return payload, nil
}
