package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.False(t, cfg.Log.Pretty)
		assert.Equal(t, 5*time.Minute, cfg.Cache.MenuTTL)
		assert.Equal(t, 24*time.Hour, cfg.Cache.IdempotencyTTL)
		assert.Equal(t, "https://postman-echo.com", cfg.ShopAPI.BaseURL)
		assert.Equal(t, "1.0", cfg.ShopAPI.APIVersion)
		assert.True(t, decimal.RequireFromString("0.08").Equal(cfg.Checkout.TaxRate))
		assert.Equal(t, 16, cfg.Checkout.MinPaymentTokenLength)
		assert.Equal(t, 500*time.Millisecond, cfg.Simulator.ShortDelay)
		assert.Equal(t, time.Second, cfg.Simulator.MediumDelay)
		assert.Equal(t, 2*time.Second, cfg.Simulator.LongDelay)
		assert.Equal(t, 3*time.Second, cfg.Simulator.SettleDelay)
		assert.False(t, cfg.Simulator.AutoStart)
		assert.False(t, cfg.Auth.Enabled)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "scoop_service", cfg.Database.DatabaseName)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("LOG_LEVEL", "debug")
		_ = os.Setenv("LOG_PRETTY", "true")
		_ = os.Setenv("MENU_CACHE_TTL", "10m")
		_ = os.Setenv("SHOP_API_BASE_URL", "http://localhost:9999")
		_ = os.Setenv("TAX_RATE", "0.1")
		_ = os.Setenv("SIM_SHORT_DELAY", "10ms")
		_ = os.Setenv("SIM_AUTOSTART", "true")
		_ = os.Setenv("SIM_AUTOSTART_COUNT", "3")
		_ = os.Setenv("AUTH_ENABLED", "true")
		_ = os.Setenv("API_KEYS", "key1,key2")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Log.Pretty)
		assert.Equal(t, 10*time.Minute, cfg.Cache.MenuTTL)
		assert.Equal(t, "http://localhost:9999", cfg.ShopAPI.BaseURL)
		assert.True(t, decimal.RequireFromString("0.1").Equal(cfg.Checkout.TaxRate))
		assert.Equal(t, 10*time.Millisecond, cfg.Simulator.ShortDelay)
		assert.True(t, cfg.Simulator.AutoStart)
		assert.Equal(t, 3, cfg.Simulator.AutoStartCount)
		assert.True(t, cfg.Auth.Enabled)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("AUTH_ENABLED", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		_ = os.Setenv("TAX_RATE", "abc")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.True(t, decimal.RequireFromString("0.08").Equal(cfg.Checkout.TaxRate))
	})

	t.Run("rejects negative tax rate", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("TAX_RATE", "-0.5")
		defer os.Clearenv()

		cfg := Load()

		assert.True(t, decimal.RequireFromString("0.08").Equal(cfg.Checkout.TaxRate))
	})

	t.Run("parses API keys with whitespace", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("API_KEYS", " key1 , key2 , key3 ")
		defer os.Clearenv()

		cfg := Load()

		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.True(t, cfg.Auth.APIKeys["key3"])
	})

	t.Run("returns nil for empty API keys", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Nil(t, cfg.Auth.APIKeys)
	})

	t.Run("appends CORS origins to defaults", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", "https://shop.example.com, ")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000", "https://shop.example.com"}, cfg.Server.CORSOrigins)
	})
}
