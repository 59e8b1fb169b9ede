package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("SMTP_USERNAME", "mailer@example.com")
	t.Setenv("MAIL_FROM", "")
	t.Setenv("NOTIFY_TRANSPORT", "")

	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Fatalf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.MailFrom != "mailer@example.com" {
		t.Fatalf("MailFrom = %q, want SMTP username fallback", cfg.MailFrom)
	}
	if cfg.NotifyTransport != "smtp" {
		t.Fatalf("NotifyTransport = %q, want smtp", cfg.NotifyTransport)
	}
}

func TestLoadParsesListsAndDurations(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " broker-1:9092, ,broker-2:9092 ")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := Load()
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "broker-2:9092" {
		t.Fatalf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Fatalf("CacheTTL = %v, want 90s", cfg.CacheTTL)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("SMTPPort = %d, want fallback 587", cfg.SMTPPort)
	}
}

func TestValidate(t *testing.T) {
	strong := strings.Repeat("s", 32)
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing secret", Config{NotifyTransport: "log"}, "JWT_SECRET is not set"},
		{"weak secret", Config{JWTSecret: "short", NotifyTransport: "log"}, "at least 32"},
		{"log transport ok", Config{JWTSecret: strong, NotifyTransport: "log"}, ""},
		{"smtp without credentials", Config{JWTSecret: strong, NotifyTransport: "smtp", ReportRecipient: "a@b.c"}, "SMTP_USERNAME"},
		{"kafka without brokers", Config{JWTSecret: strong, NotifyTransport: "kafka", ReportRecipient: "a@b.c"}, "KAFKA_BROKERS"},
		{"unknown transport", Config{JWTSecret: strong, NotifyTransport: "fax", ReportRecipient: "a@b.c"}, "NOTIFY_TRANSPORT"},
		{"missing recipient", Config{JWTSecret: strong, NotifyTransport: "kafka", KafkaBrokers: []string{"k:9092"}}, "REPORT_RECIPIENT"},
		{"smtp ok", Config{JWTSecret: strong, NotifyTransport: "smtp", ReportRecipient: "a@b.c", SMTPUsername: "u", SMTPPassword: "p"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}
