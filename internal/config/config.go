package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

type StorageDriver string

const (
	DriverMemory   StorageDriver = "memory"
	DriverSQLite   StorageDriver = "sqlite"
	DriverPostgres StorageDriver = "postgres"
	DriverRedis    StorageDriver = "redis"
)

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

type StorageConfig struct {
	Driver   StorageDriver  `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

type ReviewsConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type CheckoutConfig struct {
	Mode          string `yaml:"mode"`
	PaymentPath   string `yaml:"payment_path"`
	WhatsAppPhone string `yaml:"whatsapp_phone"`
	ShopName      string `yaml:"shop_name"`
}

type NotifyConfig struct {
	Visible time.Duration `yaml:"visible"`
	Exit    time.Duration `yaml:"exit"`
}

type CurrencyConfig struct {
	Code   string `yaml:"code"`
	Symbol string `yaml:"symbol"`
}

type Config struct {
	Profile  string         `yaml:"profile"`
	Storage  StorageConfig  `yaml:"storage"`
	Reviews  ReviewsConfig  `yaml:"reviews"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Notify   NotifyConfig   `yaml:"notify"`
	Currency CurrencyConfig `yaml:"currency"`
}

func Default() Config {
	sqlitePath := "storefront.db"
	if dir, err := os.UserConfigDir(); err == nil {
		sqlitePath = filepath.Join(dir, "storefront", "profiles.db")
	}

	return Config{
		Profile: "default",
		Storage: StorageConfig{
			Driver: DriverSQLite,
			SQLite: SQLiteConfig{Path: sqlitePath},
			Redis:  RedisConfig{Addr: "localhost:6379"},
		},
		Reviews: ReviewsConfig{
			Endpoint: "http://localhost:8080/reviews",
		},
		Checkout: CheckoutConfig{
			Mode:        "payment",
			PaymentPath: "/pay",
			ShopName:    "Madam Choice Footwear",
		},
		Notify: NotifyConfig{
			Visible: 3 * time.Second,
			Exit:    400 * time.Millisecond,
		},
		Currency: CurrencyConfig{
			Code:   "INR",
			Symbol: "₹",
		},
	}
}

// LoadConfig reads filename over the defaults. An empty filename yields the
// defaults.
func LoadConfig(filename string) (Config, error) {
	config := Default()

	if filename != "" {
		file, err := os.Open(filename)
		if err != nil {
			return config, fmt.Errorf("os.Open: %w", err)
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return config, fmt.Errorf("decoder.Decode: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

func (c Config) Validate() error {
	if c.Profile == "" {
		return fmt.Errorf("profile is empty")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path is empty")
		}
	case DriverPostgres:
		if c.Storage.Postgres.DSN == "" {
			return fmt.Errorf("storage.postgres.dsn is empty")
		}
	case DriverRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is empty")
		}
	default:
		return fmt.Errorf("storage.driver[%s] is not valid", c.Storage.Driver)
	}

	if c.Notify.Visible <= 0 || c.Notify.Exit < 0 {
		return fmt.Errorf("notify durations must be positive")
	}

	if _, err := c.CurrencyUnit(); err != nil {
		return err
	}

	return nil
}

func (c Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency.Code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency.Code, err)
	}
	return unit, nil
}
