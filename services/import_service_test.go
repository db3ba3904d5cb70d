package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/septianhadinugroho/snack-iseng-service/models"
)

func TestResolveDate(t *testing.T) {
	fallback := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// ISO langsung
	got := resolveDate("2024-03-05", fallback)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 5, got.Day())

	// DD/MM/YYYY, bukan MM/DD/YYYY
	got = resolveDate("05/03/2024", fallback)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 5, got.Day())

	// Sel kosong / sampah -> fallback
	assert.Equal(t, fallback, resolveDate("", fallback))
	assert.Equal(t, fallback, resolveDate("kemarin", fallback))
}

func TestResolvePayment(t *testing.T) {
	isPaid, method := resolvePayment("Belum Bayar")
	assert.False(t, isPaid)
	assert.Equal(t, "Cash", method)

	isPaid, _ = resolvePayment("")
	assert.False(t, isPaid)

	isPaid, method = resolvePayment("Lunas QRIS")
	assert.True(t, isPaid)
	assert.Equal(t, "QRIS", method)

	isPaid, method = resolvePayment("Lunas")
	assert.True(t, isPaid)
	assert.Equal(t, "Cash", method)

	// "belum" menang walau metode ikut disebut
	isPaid, _ = resolvePayment("Belum Bayar (QRIS)")
	assert.False(t, isPaid)
}

func TestResolveReceived(t *testing.T) {
	assert.True(t, resolveReceived("Sudah"))
	assert.True(t, resolveReceived("  sudah diterima "))
	assert.False(t, resolveReceived("Belum"))
	assert.False(t, resolveReceived(""))
}

func TestParseQty(t *testing.T) {
	assert.Equal(t, 2, parseQty("2"))
	assert.Equal(t, 2, parseQty("2 pcs"))
	assert.Equal(t, 0, parseQty(""))
	assert.Equal(t, 0, parseQty("-"))
	assert.Equal(t, 10, parseQty(" 10 "))
}

func TestImportOrdersScenario(t *testing.T) {
	db := setupLedgerDB(t)
	notifier := &fakeNotifier{}
	importer := NewImportService(NewLedgerService(db, notifier))

	rows := []SheetRow{
		{"Nama": "Ani", "Balado": "2", "BBQ": "0"},
		{"Nama": "", "Balado": "5"},
	}

	count, err := importer.ImportOrders(rows, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	var orders []models.Order
	db.Preload("Items").Find(&orders)
	assert.Len(t, orders, 1)
	assert.Equal(t, "Ani", orders[0].CustomerName)
	assert.Equal(t, 2, orders[0].TotalItems)
	assert.Equal(t, 10000, orders[0].TotalPrice)
	assert.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Balado", orders[0].Items[0].ProductName)
	assert.Equal(t, 10000, orders[0].Items[0].Subtotal)

	// Import bulk: satu summary log, tanpa push per baris
	var logs []models.HistoryLog
	db.Where("type = ?", models.HistoryTypeOrder).Find(&logs)
	assert.Len(t, logs, 1)
	assert.Equal(t, "Import Excel: 1 Pesanan", logs[0].Action)
	assert.Empty(t, notifier.calls)
}

func TestImportOrdersSkipsRowWithoutPositiveQty(t *testing.T) {
	db := setupLedgerDB(t)
	importer := NewImportService(NewLedgerService(db, nil))

	rows := []SheetRow{
		{"Nama": "Fajar", "Balado": "0", "BBQ": "-"},
	}

	count, err := importer.ImportOrders(rows, 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	var total int64
	db.Model(&models.Order{}).Count(&total)
	assert.Equal(t, int64(0), total)
}

func TestImportOrdersPedasColumnMapsToBonCabe(t *testing.T) {
	db := setupLedgerDB(t)
	importer := NewImportService(NewLedgerService(db, nil))

	rows := []SheetRow{
		{"Nama": "Gita", "Pedas": "3", "Status Pembayaran": "Lunas QRIS", "Snack Diterima": "Sudah"},
	}

	count, err := importer.ImportOrders(rows, 2)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	var order models.Order
	db.Preload("Items").First(&order)
	assert.Equal(t, "Pedas Bon Cabe", order.Items[0].ProductName)
	assert.Equal(t, "QRIS", order.PaymentMethod)
	assert.True(t, order.PaymentStatus)
	assert.True(t, order.IsReceived)
}

func TestImportExpensesGrouping(t *testing.T) {
	db := setupLedgerDB(t)
	importer := NewImportService(NewLedgerService(db, nil))

	rows := []SheetRow{
		{"Belanja ke": "1", "Bungkus": "-"},
		{"Beli": "Minyak", "Harga": "Rp 20.000"},
		{"Belanja ke": "2", "Bungkus": "50"},
		{"Beli": "Garam", "Harga": "5000"},
	}

	count, err := importer.ImportExpenses(rows)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	var expenses []models.Expense
	db.Preload("Items").Order("id").Find(&expenses)
	assert.Len(t, expenses, 2)

	assert.Equal(t, 0, expenses[0].YieldEstimate)
	assert.Equal(t, 20000, expenses[0].TotalCost)
	assert.Len(t, expenses[0].Items, 1)
	assert.Equal(t, "Minyak", expenses[0].Items[0].Name)
	assert.Equal(t, "-", expenses[0].Items[0].Quantity)

	assert.Equal(t, 50, expenses[1].YieldEstimate)
	assert.Equal(t, 5000, expenses[1].TotalCost)
	assert.Equal(t, "Garam", expenses[1].Items[0].Name)
	assert.Equal(t, "Import Excel (Hasil: 50)", expenses[1].Description)

	var logs []models.HistoryLog
	db.Where("type = ?", models.HistoryTypeExpense).Find(&logs)
	assert.Len(t, logs, 1)
	assert.Equal(t, "Import Excel: 2 Nota Belanja", logs[0].Action)
}

func TestImportExpensesSkipsTotalRowAndMarkerWithItem(t *testing.T) {
	db := setupLedgerDB(t)
	importer := NewImportService(NewLedgerService(db, nil))

	// Baris pertama sekaligus marker + item; baris subtotal "Total" di-skip.
	rows := []SheetRow{
		{"Belanja ke": "1", "Bungkus": "30", "Beli": "Singkong", "Quantity": "5 kg", "Harga": "50000"},
		{"Beli": "Total", "Harga": "50000"},
	}

	count, err := importer.ImportExpenses(rows)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	var expense models.Expense
	db.Preload("Items").First(&expense)
	assert.Equal(t, 30, expense.YieldEstimate)
	assert.Equal(t, 50000, expense.TotalCost)
	assert.Len(t, expense.Items, 1)
	assert.Equal(t, "Singkong", expense.Items[0].Name)
	assert.Equal(t, "5 kg", expense.Items[0].Quantity)
}

func TestParseSheetRoundTrip(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	assert.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Nama", "Balado", "Keju"}))
	assert.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"Ani", "2", ""}))
	assert.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"Budi", "", "1"}))

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)

	rows, err := ParseSheet(buf.Bytes())
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Ani", rows[0]["Nama"])
	assert.Equal(t, "2", rows[0]["Balado"])
	assert.Equal(t, "", rows[0]["Keju"])
	assert.Equal(t, "1", rows[1]["Keju"])
}
