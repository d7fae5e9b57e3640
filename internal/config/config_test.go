package config

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.TrustedOrigins)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "users", cfg.Mongo.Collection)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 60*time.Second, cfg.Redis.ProfilesTTL)
	assert.Equal(t, 64*1024, cfg.Password.MemoryKiB)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("TRUSTED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_PROFILES_TTL", "5")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.TrustedOrigins)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Redis.ProfilesTTL)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestValidateArgon2Parameters(t *testing.T) {
	cfg := &Config{
		Store:    StoreConfig{Driver: DriverMemory},
		Password: PasswordConfig{MemoryKiB: 1024, Iterations: 0, Parallelism: 1},
	}
	assert.Error(t, cfg.Validate())

	cfg.Password.Iterations = 1
	assert.NoError(t, cfg.Validate())

	cfg.Password.Parallelism = 300
	assert.Error(t, cfg.Validate())
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "profiles", SSLMode: "require",
	}
	assert.Equal(t, "host='db' port='5432' user='u' password='p' dbname='profiles' sslmode='require'", db.ConnectionString())

	db.ChannelBinding = "require"
	assert.Contains(t, db.ConnectionString(), " channel_binding='require'")
}

func TestConnectionStringQuotesPassword(t *testing.T) {
	db := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: `p ss'w\rd`, DBName: "profiles", SSLMode: "disable",
	}
	dsn := db.ConnectionString()
	assert.Contains(t, dsn, `password='p ss\'w\\rd'`)

	_, err := pq.NewConnector(dsn)
	require.NoError(t, err)

	db.Password = ""
	assert.Contains(t, db.ConnectionString(), "password='' ")
}
