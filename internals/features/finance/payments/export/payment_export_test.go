package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hostelhub_backend/internals/features/finance/payments/model"
	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	roomModel "hostelhub_backend/internals/features/hostel/rooms/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

func readRows(t *testing.T, b []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func TestWritePaymentsHeaderOnly(t *testing.T) {
	b, err := WritePayments(nil)
	require.NoError(t, err)
	rows := readRows(t, b)
	require.Len(t, rows, 1)
	assert.Equal(t, Header, rows[0])
}

func TestWritePaymentsRows(t *testing.T) {
	paid := dbtime.NewDate(2025, 3, 12)
	rows := []model.Payment{
		{
			Resident: &residentModel.Resident{
				ResidentName: "Alice Perera",
				Room:         &roomModel.Room{RoomNumber: "101"},
			},
			PaymentMonth:      "March 2025",
			PaymentAmount:     decimal.NewFromInt(45000),
			PaymentFoodCharge: decimal.NewFromInt(5000),
			PaymentLateFee:    decimal.Zero,
			PaymentTotal:      decimal.NewFromInt(50000),
			PaymentStatus:     model.PaymentStatusPaid,
			PaymentMethod:     model.PaymentMethodBankTransfer,
			PaymentDate:       dbtime.NewDate(2025, 3, 1),
			PaymentPaidDate:   &paid,
		},
		{
			PaymentMonth:      "April 2025",
			PaymentAmount:     decimal.RequireFromString("120.5"),
			PaymentFoodCharge: decimal.Zero,
			PaymentLateFee:    decimal.NewFromInt(2),
			PaymentTotal:      decimal.RequireFromString("122.5"),
			PaymentStatus:     model.PaymentStatusLate,
			PaymentMethod:     model.PaymentMethodCash,
			PaymentDate:       dbtime.NewDate(2025, 4, 1),
		},
	}

	b, err := WritePayments(rows)
	require.NoError(t, err)
	got := readRows(t, b)
	require.Len(t, got, 3)

	assert.Equal(t, []string{
		"Alice Perera", "101", "March 2025", "45000", "5000", "0", "50000",
		"paid", "bank_transfer", "2025-03-01", "2025-03-12",
	}, got[1])

	assert.Equal(t, "", got[2][0])
	assert.Equal(t, "April 2025", got[2][2])
	assert.Equal(t, "122.5", got[2][6])
	assert.Equal(t, "late", got[2][7])
}
