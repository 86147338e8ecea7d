package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	CatalogConfig struct {
		File     string   // optional YAML file overriding the embedded catalog
		Enrolled []string // slugs the user already holds at start-up; comma or space separated in env
		PageSize int
	}

	PaymentConfig struct {
		MerchantID   string
		PollInterval time.Duration
		MaxAttempts  int
	}

	ContactConfig struct {
		Recipient      string
		TelegramToken  string
		TelegramChatID string
		TelegramAPIURL string
	}

	Config struct {
		Env             string // DEV (local; default), TEST, QA, PROD
		Debug           bool
		TestMode        bool
		AppName         string
		Build           string
		FrontendBaseURL string
		RollbarToken    string
		SendgridAPIKey  string

		Server  ServerConfig
		Catalog CatalogConfig
		Payment PaymentConfig
		Contact ContactConfig

		defaultFromEmail string
	}
)

// DefaultFromEmail returns the address outgoing mails are sent from.
func (conf *Config) DefaultFromEmail() mail.Address {
	if addr, err := mail.ParseAddress(conf.defaultFromEmail); err == nil {
		return *addr
	}
	return mail.Address{Name: conf.AppName, Address: conf.defaultFromEmail}
}

// NewConfig loads the configuration for the current ENV.
// Values are read from viper defaults, an optional `config/.env.<env>` file and the environment,
// the latter prefixed with the env name (eg. PROD_SERVER_ADDRESS).
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Coursely")
	v.SetDefault("build", "develop")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridAPIKey", "")
	v.SetDefault("email.defaultFrom", "Coursely <noreply@localhost>")

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)

	v.SetDefault("catalog.file", "")
	v.SetDefault("catalog.enrolled", "")
	v.SetDefault("catalog.pageSize", 6)

	v.SetDefault("payment.merchantID", "COURSELY_MERCHANT")
	v.SetDefault("payment.pollInterval", 2*time.Second)
	v.SetDefault("payment.maxAttempts", 3)

	v.SetDefault("contact.recipient", "support@localhost")
	v.SetDefault("contact.telegramToken", "")
	v.SetDefault("contact.telegramChatID", "")
	v.SetDefault("contact.telegramAPIURL", "https://api.telegram.org")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	confDir := os.Getenv("CONFIG_DIR")
	if confDir == "" {
		confDir = "config"
	}
	dotEnvPath := filepath.Join(confDir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:             env,
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		AppName:         v.GetString("appName"),
		Build:           v.GetString("build"),
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		RollbarToken:    v.GetString("rollbarToken"),
		SendgridAPIKey:  v.GetString("sendgridAPIKey"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Catalog: CatalogConfig{
			File:     v.GetString("catalog.file"),
			Enrolled: splitList(v.GetString("catalog.enrolled")),
			PageSize: v.GetInt("catalog.pageSize"),
		},
		Payment: PaymentConfig{
			MerchantID:   v.GetString("payment.merchantID"),
			PollInterval: v.GetDuration("payment.pollInterval"),
			MaxAttempts:  v.GetInt("payment.maxAttempts"),
		},
		Contact: ContactConfig{
			Recipient:      v.GetString("contact.recipient"),
			TelegramToken:  v.GetString("contact.telegramToken"),
			TelegramChatID: v.GetString("contact.telegramChatID"),
			TelegramAPIURL: v.GetString("contact.telegramAPIURL"),
		},
		defaultFromEmail: v.GetString("email.defaultFrom"),
	}
}

// splitList splits a config list such as "a, b c" on commas and whitespace.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
}

// NewTestConfig returns a Config suited for tests: no network, no delays.
func NewTestConfig() *Config {
	return &Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "Coursely",
		Build:    "test",
		Server: ServerConfig{
			DisableReqLogs:  true,
			ShutdownTimeout: time.Second,
		},
		Catalog: CatalogConfig{PageSize: 6},
		Payment: PaymentConfig{
			MerchantID:  "TEST_MERCHANT",
			MaxAttempts: 3,
		},
		Contact:          ContactConfig{Recipient: "support@test.test"},
		defaultFromEmail: "noreply@test.test",
	}
}
