package services

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/septianhadinugroho/snack-iseng-service/models"
)

// fakeSender mengembalikan status HTTP yang sudah dipetakan per endpoint.
type fakeSender struct {
	mu       sync.Mutex
	statuses map[string]int
	sent     []string
}

func (f *fakeSender) Send(sub models.PushSubscription, payload []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sub.Endpoint)
	if status, ok := f.statuses[sub.Endpoint]; ok {
		return status, nil
	}
	return http.StatusCreated, nil
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestSubscribeUpsertsByEndpoint(t *testing.T) {
	db := setupLedgerDB(t)
	ps := NewPushServiceWithSender(db, &fakeSender{})

	assert.NoError(t, ps.Subscribe("https://push.example/abc", "key1", "auth1"))
	assert.NoError(t, ps.Subscribe("https://push.example/abc", "key2", "auth2"))

	var subs []models.PushSubscription
	db.Find(&subs)
	assert.Len(t, subs, 1)
	assert.Equal(t, "key2", subs[0].P256dh)
	assert.Equal(t, "auth2", subs[0].Auth)
}

func TestBroadcastDeliversToAllSubscribers(t *testing.T) {
	db := setupLedgerDB(t)
	sender := &fakeSender{statuses: map[string]int{}}
	ps := NewPushServiceWithSender(db, sender)

	assert.NoError(t, ps.Subscribe("https://push.example/a", "k", "a"))
	assert.NoError(t, ps.Subscribe("https://push.example/b", "k", "a"))

	ps.Broadcast("Order Baru Masuk! 💰", "Ani beli 2 item", "/orders")

	assert.Eventually(t, func() bool {
		return sender.sentCount() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestBroadcastPrunesGoneSubscription(t *testing.T) {
	db := setupLedgerDB(t)
	sender := &fakeSender{statuses: map[string]int{
		"https://push.example/dead": http.StatusGone,
	}}
	ps := NewPushServiceWithSender(db, sender)

	assert.NoError(t, ps.Subscribe("https://push.example/dead", "k", "a"))
	assert.NoError(t, ps.Subscribe("https://push.example/alive", "k", "a"))

	ps.Broadcast("Belanja Stok Baru 🛒", "Total: Rp 20.000", "/expenses")

	// Endpoint yang sudah mati dihapus, yang hidup tetap tercatat
	assert.Eventually(t, func() bool {
		var count int64
		db.Model(&models.PushSubscription{}).Count(&count)
		return count == 1
	}, time.Second, 10*time.Millisecond)

	var remaining models.PushSubscription
	assert.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, "https://push.example/alive", remaining.Endpoint)
}
