// Package export renders the payment ledger as an XLSX workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"hostelhub_backend/internals/features/finance/payments/model"
)

const SheetName = "Payments"

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var Header = []string{
	"Resident",
	"Room",
	"Month",
	"Amount",
	"Food Charge",
	"Late Fee",
	"Total",
	"Status",
	"Method",
	"Payment Date",
	"Paid Date",
}

var columnWidths = []float64{24, 10, 16, 12, 12, 10, 12, 10, 15, 14, 14}

// WritePayments builds the ledger workbook. Money columns are written as
// numbers so the sheet can sum them; an empty slice yields only the header.
func WritePayments(rows []model.Payment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	if err := writeRow(f, 1, headerCells()); err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, w := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("column width %s: %w", col, err)
		}
	}

	for i := range rows {
		if err := writeRow(f, i+2, paymentCells(&rows[i])); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func headerCells() []any {
	out := make([]any, len(Header))
	for i, h := range Header {
		out[i] = h
	}
	return out
}

func paymentCells(p *model.Payment) []any {
	var resident, room string
	if p.Resident != nil {
		resident = p.Resident.ResidentName
		if p.Resident.Room != nil {
			room = p.Resident.Room.RoomNumber
		}
	}
	var paid string
	if p.PaymentPaidDate != nil {
		paid = p.PaymentPaidDate.String()
	}
	return []any{
		resident,
		room,
		p.PaymentMonth,
		p.PaymentAmount.InexactFloat64(),
		p.PaymentFoodCharge.InexactFloat64(),
		p.PaymentLateFee.InexactFloat64(),
		p.PaymentTotal.InexactFloat64(),
		string(p.PaymentStatus),
		string(p.PaymentMethod),
		p.PaymentDate.String(),
		paid,
	}
}

func writeRow(f *excelize.File, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
