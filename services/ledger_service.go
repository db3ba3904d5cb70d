package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/realtime"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

// UnitPrice adalah harga jual per bungkus untuk semua varian.
const UnitPrice = 5000

// Notifier mengirim push notification ke semua subscriber.
// Pengiriman best-effort: LedgerService tidak pernah menunggu atau
// peduli hasilnya.
type Notifier interface {
	Broadcast(title, body, url string)
}

// LedgerService adalah jalur tulis untuk order dan nota belanja.
// Parent + child selalu ditulis dalam satu transaksi; history log dan
// push notification baru jalan setelah commit.
type LedgerService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewLedgerService(db *gorm.DB, notifier Notifier) *LedgerService {
	return &LedgerService{DB: db, Notifier: notifier}
}

type OrderItemInput struct {
	ProductID   *uint  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type OrderInput struct {
	CustomerName  string
	Date          time.Time
	PaymentMethod string
	IsPaid        bool
	IsReceived    bool
	Description   string
	AdminID       *uint
	Items         []OrderItemInput
}

type ExpenseItemInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Price    int    `json:"price"`
}

type ExpenseInput struct {
	Date          time.Time
	YieldEstimate int
	Description   string
	Items         []ExpenseItemInput
}

// CreateOrder menghitung total lalu menulis order + item dalam satu transaksi.
// Daftar item kosong diperbolehkan (totalnya 0).
func (ls *LedgerService) CreateOrder(input OrderInput) (*models.Order, error) {
	totalPrice := 0
	totalItems := 0
	for _, it := range input.Items {
		totalPrice += it.Quantity * UnitPrice
		totalItems += it.Quantity
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	order := models.Order{
		CustomerName:  input.CustomerName,
		Date:          date,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: input.IsPaid,
		IsReceived:    input.IsReceived,
		Description:   input.Description,
		TotalItems:    totalItems,
		TotalPrice:    totalPrice,
		AdminID:       input.AdminID,
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, models.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Subtotal:    it.Quantity * UnitPrice,
		})
	}

	if err := ls.insertOrderTx(&order, items); err != nil {
		return nil, err
	}

	details := make([]string, 0, len(input.Items))
	for _, it := range input.Items {
		details = append(details, fmt.Sprintf("%s (%d)", it.ProductName, it.Quantity))
	}
	logMsg := fmt.Sprintf("%s - %s - %s", input.CustomerName, strings.Join(details, ", "), utils.FormatRupiah(totalPrice))
	ls.appendHistory(logMsg, models.HistoryTypeOrder)

	ls.notify("Order Baru Masuk! 💰", fmt.Sprintf("%s beli %d item", input.CustomerName, totalItems), "/orders")
	realtime.BroadcastOrderUpdate(order)

	return &order, nil
}

// UpdateOrder mengganti header order dan SELURUH itemnya dengan kiriman terbaru
// (delete semua lalu insert ulang, dalam satu transaksi).
func (ls *LedgerService) UpdateOrder(id uint, input OrderInput) error {
	var existing models.Order
	if err := ls.DB.First(&existing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	totalPrice := 0
	totalItems := 0
	for _, it := range input.Items {
		totalPrice += it.Quantity * UnitPrice
		totalItems += it.Quantity
	}

	date := input.Date
	if date.IsZero() {
		date = existing.Date
	}

	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"customer_name":  input.CustomerName,
			"payment_method": input.PaymentMethod,
			"payment_status": input.IsPaid,
			"is_received":    input.IsReceived,
			"description":    input.Description,
			"total_items":    totalItems,
			"total_price":    totalPrice,
			"date":           date,
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}

		for _, it := range input.Items {
			item := models.OrderItem{
				OrderID:     id,
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				Subtotal:    it.Quantity * UnitPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	ls.appendHistory(fmt.Sprintf("Edit Order: %s", input.CustomerName), models.HistoryTypeOrder)
	ls.notify("Order Diupdate ✏️",
		fmt.Sprintf("Order atas nama %s telah diubah. Total: %s", input.CustomerName, utils.FormatRupiah(totalPrice)),
		"/orders")

	return nil
}

// DeleteOrder menghapus order beserta itemnya.
func (ls *LedgerService) DeleteOrder(id uint) error {
	var order models.Order
	if err := ls.DB.First(&order, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
	if err != nil {
		return err
	}

	ls.appendHistory(fmt.Sprintf("Hapus Order: %s", order.CustomerName), models.HistoryTypeOrder)
	ls.notify("Order Dihapus 🗑️",
		fmt.Sprintf("Order atas nama %s telah dihapus dari sistem.", order.CustomerName),
		"/orders")

	return nil
}

// CreateExpense menulis nota belanja + item dalam satu transaksi.
// Item tanpa nama atau tanpa harga di-skip, tidak bikin error.
func (ls *LedgerService) CreateExpense(input ExpenseInput) (*models.Expense, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyItems
	}

	totalCost := 0
	for _, it := range input.Items {
		totalCost += it.Price
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	expense := models.Expense{
		Date:          date,
		TotalCost:     totalCost,
		YieldEstimate: input.YieldEstimate,
		Description:   input.Description,
	}

	items := make([]models.ExpenseItem, 0, len(input.Items))
	for _, it := range input.Items {
		if it.Name == "" || it.Price == 0 {
			continue
		}
		items = append(items, models.ExpenseItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	if err := ls.insertExpenseTx(&expense, items); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(input.Items))
	for _, it := range input.Items {
		names = append(names, it.Name)
	}
	ls.appendHistory(fmt.Sprintf("%s - %s", strings.Join(names, ", "), utils.FormatRupiah(totalCost)), models.HistoryTypeExpense)

	ls.notify("Belanja Stok Baru 🛒", fmt.Sprintf("Total: %s", utils.FormatRupiah(totalCost)), "/expenses")
	realtime.BroadcastExpenseUpdate(expense)

	return &expense, nil
}

// UpdateExpense mengganti header + seluruh item nota belanja.
func (ls *LedgerService) UpdateExpense(id uint, input ExpenseInput) error {
	var existing models.Expense
	if err := ls.DB.First(&existing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	totalCost := 0
	for _, it := range input.Items {
		totalCost += it.Price
	}

	date := input.Date
	if date.IsZero() {
		date = existing.Date
	}

	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"date":           date,
			"total_cost":     totalCost,
			"yield_estimate": input.YieldEstimate,
			"description":    input.Description,
		}
		if err := tx.Model(&models.Expense{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("expense_id = ?", id).Delete(&models.ExpenseItem{}).Error; err != nil {
			return err
		}

		for _, it := range input.Items {
			if it.Name == "" || it.Price == 0 {
				continue
			}
			item := models.ExpenseItem{
				ExpenseID: id,
				Name:      it.Name,
				Quantity:  it.Quantity,
				Price:     it.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	ls.appendHistory(fmt.Sprintf("Edit Belanja ID: %d", id), models.HistoryTypeExpense)
	ls.notify("Nota Belanja Diupdate ✏️",
		fmt.Sprintf("Data belanja ID %d diubah. Total baru: %s", id, utils.FormatRupiah(totalCost)),
		"/expenses")

	return nil
}

// DeleteExpense menghapus nota belanja beserta itemnya.
func (ls *LedgerService) DeleteExpense(id uint) error {
	var expense models.Expense
	if err := ls.DB.First(&expense, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", id).Delete(&models.ExpenseItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Expense{}, id).Error
	})
	if err != nil {
		return err
	}

	ls.appendHistory(fmt.Sprintf("Hapus Nota Belanja ID: %d", id), models.HistoryTypeExpense)
	ls.notify("Nota Belanja Dihapus 🗑️",
		fmt.Sprintf("Nota belanja ID %d telah dihapus permanen.", id),
		"/expenses")

	return nil
}

// DeleteExpenseItem menghapus satu item dan mengurangi totalCost parent
// sebesar harga item itu, minimal 0. Keduanya dalam satu transaksi.
func (ls *LedgerService) DeleteExpenseItem(itemID uint) error {
	var item models.ExpenseItem
	if err := ls.DB.First(&item, itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	return ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ExpenseItem{}, itemID).Error; err != nil {
			return err
		}

		var parent models.Expense
		if err := tx.First(&parent, item.ExpenseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				// Parent sudah tidak ada, cukup hapus itemnya.
				return nil
			}
			return err
		}

		newTotal := parent.TotalCost - item.Price
		if newTotal < 0 {
			newTotal = 0
		}
		return tx.Model(&parent).Update("total_cost", newTotal).Error
	})
}

// ResetOrders menghapus SEMUA order, itemnya, dan history bertipe ORDER.
func (ls *LedgerService) ResetOrders() error {
	return ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Where("type = ?", models.HistoryTypeOrder).Delete(&models.HistoryLog{}).Error
	})
}

// ResetExpenses menghapus SEMUA nota belanja, itemnya, dan history bertipe EXPENSE.
func (ls *LedgerService) ResetExpenses() error {
	return ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ExpenseItem{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Where("type = ?", models.HistoryTypeExpense).Delete(&models.HistoryLog{}).Error
	})
}

// insertOrderTx menulis order + seluruh itemnya secara atomik.
func (ls *LedgerService) insertOrderTx(order *models.Order, items []models.OrderItem) error {
	return ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

// insertExpenseTx menulis nota belanja + seluruh itemnya secara atomik.
func (ls *LedgerService) insertExpenseTx(expense *models.Expense, items []models.ExpenseItem) error {
	return ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ExpenseID = expense.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		expense.Items = items
		return nil
	})
}

// appendHistory menulis satu baris audit. Gagal menulis history tidak
// pernah membatalkan operasi yang memicunya.
func (ls *LedgerService) appendHistory(action, logType string) {
	log := models.HistoryLog{Action: action, Type: logType}
	if err := ls.DB.Create(&log).Error; err != nil {
		utils.ErrorLogger.Printf("Gagal tulis history log: %v", err)
		return
	}
	realtime.BroadcastHistoryUpdate(log)
}

func (ls *LedgerService) notify(title, body, url string) {
	if ls.Notifier == nil {
		return
	}
	ls.Notifier.Broadcast(title, body, url)
}
