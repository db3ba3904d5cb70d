package services

import (
	"encoding/json"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"github.com/septianhadinugroho/snack-iseng-service/config"
	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

// PushSender mengirim satu payload ke satu subscription dan melaporkan
// status HTTP-nya. Dipisah sebagai interface supaya bisa di-fake di test.
type PushSender interface {
	Send(sub models.PushSubscription, payload []byte) (statusCode int, err error)
}

type webPushSender struct {
	options webpush.Options
}

func (s *webPushSender) Send(sub models.PushSubscription, payload []byte) (int, error) {
	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &s.options)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// PushService melakukan fan-out notifikasi ke semua subscription terdaftar.
// Best-effort: kegagalan kirim hanya dicatat, tidak pernah dipropagasi.
type PushService struct {
	DB     *gorm.DB
	Sender PushSender
}

func NewPushService(db *gorm.DB, cfg config.PushConfig) *PushService {
	return &PushService{
		DB: db,
		Sender: &webPushSender{
			options: webpush.Options{
				Subscriber:      cfg.Subject,
				VAPIDPublicKey:  cfg.PublicKey,
				VAPIDPrivateKey: cfg.PrivateKey,
				TTL:             60,
			},
		},
	}
}

// NewPushServiceWithSender dipakai test untuk menyuntik transport palsu.
func NewPushServiceWithSender(db *gorm.DB, sender PushSender) *PushService {
	return &PushService{DB: db, Sender: sender}
}

// Subscribe menyimpan (atau memperbarui) kredensial push sebuah browser.
func (ps *PushService) Subscribe(endpoint, p256dh, auth string) error {
	var sub models.PushSubscription
	err := ps.DB.Where("endpoint = ?", endpoint).First(&sub).Error
	if err == gorm.ErrRecordNotFound {
		return ps.DB.Create(&models.PushSubscription{
			Endpoint: endpoint,
			P256dh:   p256dh,
			Auth:     auth,
		}).Error
	}
	if err != nil {
		return err
	}

	sub.P256dh = p256dh
	sub.Auth = auth
	return ps.DB.Save(&sub).Error
}

// Broadcast mengirim {title, body, url} ke semua subscriber secara
// asinkron. Endpoint yang sudah mati (404/410) dihapus dari DB.
func (ps *PushService) Broadcast(title, body, url string) {
	var subs []models.PushSubscription
	if err := ps.DB.Find(&subs).Error; err != nil {
		utils.ErrorLogger.Printf("Gagal baca subscriptions: %v", err)
		return
	}

	payload, err := json.Marshal(map[string]string{
		"title": title,
		"body":  body,
		"url":   url,
	})
	if err != nil {
		utils.ErrorLogger.Printf("Gagal marshal payload notif: %v", err)
		return
	}

	for _, sub := range subs {
		go ps.deliver(sub, payload)
	}
}

func (ps *PushService) deliver(sub models.PushSubscription, payload []byte) {
	status, err := ps.Sender.Send(sub, payload)
	if err != nil {
		utils.ErrorLogger.Printf("Gagal kirim notif ke %s: %v", sub.Endpoint, err)
		return
	}

	if status == http.StatusGone || status == http.StatusNotFound {
		// Endpoint sudah basi/unregistered, hapus dari DB.
		if err := ps.DB.Where("endpoint = ?", sub.Endpoint).Delete(&models.PushSubscription{}).Error; err != nil {
			utils.ErrorLogger.Printf("Gagal hapus subscription basi: %v", err)
		}
		return
	}

	if status >= 400 {
		utils.ErrorLogger.Printf("Push ke %s ditolak dengan status %d", sub.Endpoint, status)
	}
}
