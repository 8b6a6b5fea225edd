package generate_excel

import (
	"context"
	"fmt"
	"github.com/xuri/excelize/v2"
	"job-traveler/internal/service/traveler"
	"job-traveler/internal/storage"
)

const sheet = "Traveler"

// header row of the operations table
const tableRow = 7

var operationHeaders = []string{"Seq", "Work Center", "Service", "Description", "Status", "Status Check",
	"Action Needed", "Hours", "Qty Produced", "Qty Required", "Last Work", "Days Since", "Operator"}

type TravelerReader interface {
	GetJobTraveler(ctx context.Context, jobNumber string) (*storage.Report, error)
}

type GenerateExcelService struct {
	reader TravelerReader
}

func NewGenerateService(reader TravelerReader) *GenerateExcelService {
	return &GenerateExcelService{reader: reader}
}

func (g *GenerateExcelService) GenerateExcel(ctx context.Context, jobNumber string) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	report, err := g.reader.GetJobTraveler(ctx, jobNumber)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buf, err := Render(report)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf, nil
}

// Render writes the traveler as a single-sheet workbook.
func Render(report *storage.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, err
	}
	cleanupStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	// job header
	job := report.Job
	statusDate := ""
	if job.StatusDate != nil {
		statusDate = job.StatusDate.Format("2006-01-02")
	}
	header := [][]any{
		{"Job", job.JobNumber},
		{"Customer", job.Customer},
		{"Part Number", job.PartNumber},
		{"Status", job.Status},
		{"Status Date", statusDate},
	}
	for i, kv := range header {
		row := i + 1
		f.SetCellValue(sheet, cellName(1, row), kv[0])
		f.SetCellValue(sheet, cellName(2, row), kv[1])
	}
	f.SetCellStyle(sheet, "A1", cellName(1, len(header)), boldStyle)

	// operations table
	for i, name := range operationHeaders {
		f.SetCellValue(sheet, cellName(i+1, tableRow), name)
	}
	f.SetCellStyle(sheet, cellName(1, tableRow), cellName(len(operationHeaders), tableRow), headerStyle)

	for i, o := range report.Operations {
		row := tableRow + 1 + i

		f.SetCellValue(sheet, cellName(1, row), o.Sequence)
		f.SetCellValue(sheet, cellName(2, row), o.WorkCenter)
		f.SetCellValue(sheet, cellName(3, row), o.OperationService)
		f.SetCellValue(sheet, cellName(4, row), o.Description)
		f.SetCellValue(sheet, cellName(5, row), o.StatusMeaning)
		f.SetCellValue(sheet, cellName(6, row), o.StatusCheck)
		f.SetCellValue(sheet, cellName(7, row), o.ActionNeeded)
		f.SetCellValue(sheet, cellName(8, row), o.TotalHours)
		f.SetCellValue(sheet, cellName(9, row), o.QtyProduced)
		if o.RequiredQty != nil {
			f.SetCellValue(sheet, cellName(10, row), *o.RequiredQty)
		}
		if o.LastWorkDate != nil {
			f.SetCellValue(sheet, cellName(11, row), o.LastWorkDate.Format("2006-01-02"))
		}
		if o.DaysSinceLastWork != nil {
			f.SetCellValue(sheet, cellName(12, row), *o.DaysSinceLastWork)
		}
		if o.LatestOperator != nil {
			f.SetCellValue(sheet, cellName(13, row), *o.LatestOperator)
		}

		if o.ActionNeeded == traveler.ActionCleanup {
			f.SetCellStyle(sheet, cellName(7, row), cellName(7, row), cleanupStyle)
		}
	}

	// summary below the table
	s := report.Summary
	summaryRow := tableRow + len(report.Operations) + 2
	summary := [][]any{
		{"Total Operations", s.TotalOperations},
		{"Setup Operations", s.SetupOperations},
		{"Production Operations", s.ProductionOperations},
		{"Complete", s.CompleteOperations},
		{"Active", s.ActiveOperations},
		{"Open", s.OpenOperations},
	}
	for i, kv := range summary {
		row := summaryRow + i
		f.SetCellValue(sheet, cellName(1, row), kv[0])
		f.SetCellValue(sheet, cellName(2, row), kv[1])
	}
	f.SetCellStyle(sheet, cellName(1, summaryRow), cellName(1, summaryRow+len(summary)-1), boldStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      tableRow,
		TopLeftCell: cellName(1, tableRow+1),
		ActivePane:  "bottomLeft",
	})

	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "C", 14)
	f.SetColWidth(sheet, "D", "G", 30)
	f.SetColWidth(sheet, "H", "M", 13)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
