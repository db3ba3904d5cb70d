package services

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

// SheetRow adalah satu baris spreadsheet: header kolom -> isi sel.
// Sel kosong dipetakan ke string kosong.
type SheetRow map[string]string

// variantColumn memetakan header kolom Excel ke produk katalog.
// Urutannya tetap, mengikuti urutan kolom template spreadsheet.
type variantColumn struct {
	Header    string
	ProductID uint
	RealName  string
}

var variantColumns = []variantColumn{
	{"Balado", 1, "Balado"},
	{"BBQ", 2, "BBQ"},
	{"Jagung Bakar", 3, "Jagung Bakar"},
	{"Keju", 4, "Keju"},
	{"Original", 5, "Original"},
	{"Pedas", 6, "Pedas Bon Cabe"},
}

// ImportService membaca spreadsheet hasil export dan menuangkannya ke
// jalur tulis ledger yang sama dengan input manual.
type ImportService struct {
	Ledger *LedgerService
}

func NewImportService(ledger *LedgerService) *ImportService {
	return &ImportService{Ledger: ledger}
}

// ParseSheet membaca sheet pertama file XLSX menjadi baris ber-header.
func ParseSheet(buf []byte) ([]SheetRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	result := make([]SheetRow, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(SheetRow, len(header))
		for i, col := range header {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		result = append(result, row)
	}
	return result, nil
}

// resolveDate menerjemahkan sel tanggal. Coba format ISO dulu; kalau gagal
// dan ada "/", anggap DD/MM/YYYY (format export lokal); sisanya fallback.
func resolveDate(cell string, fallback time.Time) time.Time {
	val := strings.TrimSpace(cell)
	if val == "" {
		return fallback
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, val); err == nil {
			return t
		}
	}

	if strings.Contains(val, "/") {
		parts := strings.Split(val, "/")
		if len(parts) == 3 {
			reassembled := fmt.Sprintf("%s-%s-%s", parts[2], parts[1], parts[0])
			if t, err := time.Parse("2006-1-2", reassembled); err == nil {
				return t
			}
		}
	}

	return fallback
}

// resolvePayment menerjemahkan sel status pembayaran.
// "belum"/kosong -> belum bayar; selain itu lunas, QRIS kalau disebut.
func resolvePayment(cell string) (isPaid bool, method string) {
	val := strings.ToLower(strings.TrimSpace(cell))
	if val == "" || strings.Contains(val, "belum") {
		return false, "Cash"
	}
	if strings.Contains(val, "qris") {
		return true, "QRIS"
	}
	return true, "Cash"
}

// resolveReceived: snack sudah diterima customer atau belum.
func resolveReceived(cell string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(cell)), "sudah")
}

// parseQty membaca sel kuantitas varian. Digit di depan saja yang dihitung
// ("2 pcs" -> 2); sel yang tidak bisa dibaca dihitung 0.
func parseQty(cell string) int {
	val := strings.TrimSpace(cell)
	end := 0
	for end < len(val) && val[end] >= '0' && val[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(val[:end])
	if err != nil {
		return 0
	}
	return n
}

// ImportOrders memproses baris spreadsheet order satu per satu.
// Baris tanpa "Nama" atau tanpa satupun varian berkuantitas positif di-skip.
// Import bersifat bulk: tidak ada history/notifikasi per baris, hanya satu
// summary log di akhir.
func (is *ImportService) ImportOrders(rows []SheetRow, adminID uint) (int, error) {
	count := 0
	now := time.Now()

	for _, row := range rows {
		name := strings.TrimSpace(row["Nama"])
		if name == "" {
			continue
		}

		orderDate := resolveDate(row["Tanggal"], now)
		isPaid, method := resolvePayment(row["Status Pembayaran"])
		isReceived := resolveReceived(row["Snack Diterima"])

		items := make([]models.OrderItem, 0, len(variantColumns))
		totalItems := 0
		totalPrice := 0
		for _, vc := range variantColumns {
			qty := parseQty(row[vc.Header])
			if qty <= 0 {
				continue
			}
			productID := vc.ProductID
			items = append(items, models.OrderItem{
				ProductID:   &productID,
				ProductName: vc.RealName,
				Quantity:    qty,
				Subtotal:    qty * UnitPrice,
			})
			totalItems += qty
			totalPrice += qty * UnitPrice
		}

		if len(items) == 0 {
			continue
		}

		order := models.Order{
			CustomerName:  name,
			Date:          orderDate,
			PaymentMethod: method,
			PaymentStatus: isPaid,
			IsReceived:    isReceived,
			Description:   strings.TrimSpace(row["Deskripsi"]),
			TotalItems:    totalItems,
			TotalPrice:    totalPrice,
			AdminID:       &adminID,
		}

		if err := is.Ledger.insertOrderTx(&order, items); err != nil {
			return count, err
		}
		count++
	}

	is.Ledger.appendHistory(fmt.Sprintf("Import Excel: %d Pesanan", count), models.HistoryTypeOrder)
	return count, nil
}

// pendingExpense adalah state accumulator untuk satu nota yang sedang dibaca.
type pendingExpense struct {
	yieldEstimate int
	date          time.Time
	items         []models.ExpenseItem
}

// ImportExpenses memproses baris spreadsheet belanja sebagai fold stateful:
// baris dengan "Belanja ke" terisi membuka nota baru (dan flush nota
// sebelumnya), baris dengan "Beli" terisi menambah item ke nota berjalan.
// Baris subtotal "Total" di-skip karena total selalu dihitung ulang.
func (is *ImportService) ImportExpenses(rows []SheetRow) (int, error) {
	var current *pendingExpense
	count := 0
	now := time.Now()

	flush := func() error {
		if current == nil || len(current.items) == 0 {
			return nil
		}
		if err := is.flushExpense(current); err != nil {
			return err
		}
		count++
		return nil
	}

	for _, row := range rows {
		if strings.TrimSpace(row["Beli"]) == "Total" {
			continue
		}

		if strings.TrimSpace(row["Belanja ke"]) != "" {
			if err := flush(); err != nil {
				return count, err
			}
			current = &pendingExpense{
				yieldEstimate: utils.CleanNumber(row["Bungkus"]),
				date:          now,
			}
		}

		// Baris marker bisa sekaligus memuat item pertama nota.
		if name := strings.TrimSpace(row["Beli"]); name != "" && current != nil {
			qty := strings.TrimSpace(row["Quantity"])
			if qty == "" {
				qty = "-"
			}
			current.items = append(current.items, models.ExpenseItem{
				Name:     name,
				Quantity: qty,
				Price:    utils.CleanNumber(row["Harga"]),
			})
		}
	}

	if err := flush(); err != nil {
		return count, err
	}

	is.Ledger.appendHistory(fmt.Sprintf("Import Excel: %d Nota Belanja", count), models.HistoryTypeExpense)
	return count, nil
}

func (is *ImportService) flushExpense(p *pendingExpense) error {
	totalCost := 0
	for _, it := range p.items {
		totalCost += it.Price
	}

	expense := models.Expense{
		Date:          p.date,
		TotalCost:     totalCost,
		YieldEstimate: p.yieldEstimate,
		Description:   fmt.Sprintf("Import Excel (Hasil: %d)", p.yieldEstimate),
	}
	return is.Ledger.insertExpenseTx(&expense, p.items)
}
