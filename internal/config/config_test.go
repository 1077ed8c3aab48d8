package config

import (
	"testing"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

const goodSecret = "0123456789abcdef0123456789abcdef"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errIs   error
	}{
		{
			name:   "memory store needs only a secret",
			config: Config{JWT: JWTConfig{Secret: goodSecret}},
		},
		{
			name:    "missing secret",
			config:  Config{},
			wantErr: true,
		},
		{
			name:    "short secret",
			config:  Config{JWT: JWTConfig{Secret: "too short"}},
			wantErr: true,
		},
		{
			name: "durable required without postgres",
			config: Config{
				JWT:   JWTConfig{Secret: goodSecret},
				Store: StoreConfig{RequireDurable: true},
			},
			wantErr: true,
			errIs:   domain.ErrDurableStoreRequired,
		},
		{
			name: "durable required with postgres",
			config: Config{
				JWT:   JWTConfig{Secret: goodSecret},
				Store: StoreConfig{Driver: StoreDriverPostgres, RequireDurable: true},
				Database: DatabaseConfig{
					Host: "localhost", User: "app", DBName: "flatmatch",
				},
			},
		},
		{
			name: "postgres without a host",
			config: Config{
				JWT:      JWTConfig{Secret: goodSecret},
				Store:    StoreConfig{Driver: StoreDriverPostgres},
				Database: DatabaseConfig{User: "app", DBName: "flatmatch"},
			},
			wantErr: true,
			errIs:   domain.ErrDurableStoreRequired,
		},
		{
			name: "postgres without a database name",
			config: Config{
				JWT:      JWTConfig{Secret: goodSecret},
				Store:    StoreConfig{Driver: StoreDriverPostgres},
				Database: DatabaseConfig{Host: "localhost", User: "app"},
			},
			wantErr: true,
			errIs:   domain.ErrDurableStoreRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestStoreDriverResolution(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{"", StoreDriverMemory},
		{"memory", StoreDriverMemory},
		{"postgres", StoreDriverPostgres},
		{"sqlite", StoreDriverMemory},
	}
	for _, tt := range tests {
		c := Config{Store: StoreConfig{Driver: tt.driver}}
		assert.Equal(t, tt.want, c.StoreDriver(), "driver %q", tt.driver)
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "app",
		Password: "secret", DBName: "flatmatch", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=app password=secret dbname=flatmatch sslmode=disable",
		db.GetDSN())
}

func TestRedisGetAddr(t *testing.T) {
	r := RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", r.GetAddr())
}
