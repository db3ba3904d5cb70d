package config

import "os"

// PushConfig menampung kredensial VAPID untuk Web Push.
// Dibaca sekali saat start, read-only setelahnya.
type PushConfig struct {
	Subject    string
	PublicKey  string
	PrivateKey string
}

func LoadPushConfig() PushConfig {
	subject := os.Getenv("VAPID_SUBJECT")
	if subject == "" {
		subject = "mailto:test@test.com"
	}
	return PushConfig{
		Subject:    subject,
		PublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		PrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
	}
}
