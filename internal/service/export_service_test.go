package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/qingjiang-traffic/internal/storage"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func seededExportService(t *testing.T, encoding string) *ExportService {
	t.Helper()
	backend := storage.NewMemoryBackend(0)
	submissions, _ := newTestSubmissionService(t, backend)
	input := validInput()
	input.Registrant = "王五,李六"
	if _, err := submissions.Submit(context.Background(), input); err != nil {
		t.Fatalf("seed submit failed: %v", err)
	}
	return NewExportService(submissions.repo, encoding)
}

func TestExportCSV(t *testing.T) {
	svc := seededExportService(t, "utf-8")
	file, err := svc.Export(context.Background(), "csv")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if file.Filename != "traffic_data_export.csv" {
		t.Fatalf("unexpected filename: %s", file.Filename)
	}
	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want header plus one row, got %d", len(rows))
	}
	if rows[0][0] != "name" || rows[0][9] != "submissionId" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][6] != "王五，李六" {
		t.Fatalf("commas should be replaced with full-width commas, got %q", rows[1][6])
	}
}

func TestExportCSVGBK(t *testing.T) {
	svc := seededExportService(t, "GBK")
	file, err := svc.Export(context.Background(), "")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(file.ContentType, "gbk") {
		t.Fatalf("unexpected content type: %s", file.ContentType)
	}
	decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), file.Data)
	if err != nil {
		t.Fatalf("decode gbk failed: %v", err)
	}
	if !strings.Contains(string(decoded), "张三") {
		t.Fatalf("decoded csv should contain the name")
	}
}

func TestExportXLSX(t *testing.T) {
	svc := seededExportService(t, "")
	file, err := svc.Export(context.Background(), "XLSX")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if file.Filename != "traffic_data_export.xlsx" {
		t.Fatalf("unexpected filename: %s", file.Filename)
	}
	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatalf("open xlsx failed: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("登记数据")
	if err != nil {
		t.Fatalf("read rows failed: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "张三" || rows[1][3] != "赣A12345" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestExportErrors(t *testing.T) {
	empty := NewExportService(nil, "")
	if _, err := empty.Export(context.Background(), "pdf"); !errors.Is(err, ErrInvalidExportFormat) {
		t.Fatalf("want ErrInvalidExportFormat got %v", err)
	}

	submissions, _ := newTestSubmissionService(t, storage.NewMemoryBackend(0))
	svc := NewExportService(submissions.repo, "")
	if _, err := svc.Export(context.Background(), "csv"); !errors.Is(err, ErrNoData) {
		t.Fatalf("want ErrNoData got %v", err)
	}
}
