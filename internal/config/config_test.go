package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("ORDERS_TEST_INT", "not-a-number")
	t.Setenv("ORDERS_TEST_DUR", "750ms")

	assert.Equal(t, 42, EnvIntDefault("ORDERS_TEST_INT", 42))
	assert.Equal(t, 750*time.Millisecond, EnvDurationDefault("ORDERS_TEST_DUR", time.Second))
	assert.Equal(t, "fallback", EnvDefault("ORDERS_TEST_MISSING", "fallback"))
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "root")
	t.Setenv("DB_NAME", "orders")

	assert.Equal(t, "postgres://postgres:root@db:5432/orders?sslmode=disable", DatabaseURL())

	t.Setenv("DATABASE_URL", "postgres://explicit")
	assert.Equal(t, "postgres://explicit", DatabaseURL())
}

func TestLoad(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := Load()
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Len(t, cfg.KafkaBrokers, 2)
}

func TestValidate(t *testing.T) {
	cfg := Config{ServerPort: 8080, DatabaseURL: "postgres://x", JWTSecret: []byte("s")}
	assert.NoError(t, cfg.Validate())

	err := Config{ServerPort: 0}.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "JWT_SECRET")
		assert.Contains(t, err.Error(), "DATABASE_URL")
		assert.Contains(t, err.Error(), "SERVER_PORT")
	}
}
