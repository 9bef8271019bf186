package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/qingjiang-traffic/internal/constants"
	"github.com/qingjiang-traffic/internal/models"
	"github.com/qingjiang-traffic/internal/repository"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// ExportBaseName 导出文件名（不含扩展名）
const ExportBaseName = "traffic_data_export"

// exportColumns 导出列，列名与存储字段名一致
var exportColumns = []string{
	"name", "phone", "idCard", "plateNumber", "vehicleType",
	"usageType", "registrant", "images", "submissionDate", "submissionId",
}

var exportColumnWidths = []float64{10, 14, 22, 12, 12, 10, 10, 30, 20, 20}

// ExportFile 导出结果
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService 登记数据导出
type ExportService struct {
	repo        repository.SubmissionRepository
	csvEncoding string
}

// NewExportService 创建导出服务，csvEncoding 支持 utf-8 与 gbk
func NewExportService(repo repository.SubmissionRepository, csvEncoding string) *ExportService {
	return &ExportService{repo: repo, csvEncoding: strings.ToLower(strings.TrimSpace(csvEncoding))}
}

// Export 按格式导出全部记录，无记录时返回 ErrNoData
func (s *ExportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = constants.ExportFormatCSV
	}
	if format != constants.ExportFormatCSV && format != constants.ExportFormatXLSX {
		return nil, ErrInvalidExportFormat
	}

	records, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	if format == constants.ExportFormatXLSX {
		data, err := buildXLSX(records)
		if err != nil {
			return nil, fmt.Errorf("build xlsx: %w", err)
		}
		return &ExportFile{
			Filename:    ExportBaseName + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	}

	data, err := s.buildCSV(records)
	if err != nil {
		return nil, fmt.Errorf("build csv: %w", err)
	}
	charset := "utf-8"
	if s.csvEncoding == "gbk" {
		charset = "gbk"
	}
	return &ExportFile{
		Filename:    ExportBaseName + ".csv",
		ContentType: "text/csv; charset=" + charset,
		Data:        data,
	}, nil
}

func (s *ExportService) buildCSV(records []models.SubmissionRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, record := range records {
		row := exportRow(record)
		for i := range row {
			// 半角逗号替换为全角，与历史导出格式保持一致
			row[i] = strings.ReplaceAll(row[i], ",", "，")
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	if s.csvEncoding != "gbk" {
		return buf.Bytes(), nil
	}
	encoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), buf.Bytes())
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

func buildXLSX(records []models.SubmissionRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "登记数据"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range exportColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for rowIdx, record := range records {
		for colIdx, value := range exportRow(record) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellStr(sheet, cell, value)
		}
	}
	for i, w := range exportColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRow(record models.SubmissionRecord) []string {
	return []string{
		record.Name,
		record.Phone,
		record.IDCard,
		record.PlateNumber,
		record.VehicleType,
		record.UsageType,
		record.Registrant,
		strings.Join(record.Images, "；"),
		record.SubmissionDate,
		record.SubmissionID,
	}
}
