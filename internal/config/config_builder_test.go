package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validBaseConfig carries the minimum fields the validator demands.
func validBaseConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			TokenSignKey: "secret",
		},
		Storage: Storage{
			DB: DB{DSN: "postgres://localhost/authgate"},
		},
	}
}

func TestBuild_DefaultsFillGaps(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validBaseConfig())

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	// explicit values survive
	assert.Equal(t, "secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, "postgres://localhost/authgate", cfg.Storage.DB.DSN)

	// gaps are filled by the defaults
	assert.Equal(t, "authgate", cfg.Auth.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 8, cfg.Auth.MinPasswordLength)
	assert.Equal(t, "user", cfg.Auth.DefaultRole)
	assert.Equal(t, "token", cfg.Auth.CookieName)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.Equal(t, "localhost:3000", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://localhost:5173", cfg.Server.ClientURL)
}

func TestBuild_EarlierSourceWins(t *testing.T) {
	// the env-like source comes first, the json-like source second;
	// mergo must keep the earlier non-zero values
	envLike := validBaseConfig()
	envLike.Auth.TokenIssuer = "from-env"
	envLike.Server.HTTPAddress = "localhost:8080"

	jsonLike := &StructuredConfig{
		Auth:   Auth{TokenIssuer: "from-json", TokenDuration: 2 * time.Hour},
		Server: Server{HTTPAddress: "localhost:9999"},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, envLike, jsonLike)

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.TokenIssuer)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	// fields absent from the earlier source fall through to the later one
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenDuration)
}

func TestBuild_PropagatesAccumulatedError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid config passes",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "missing sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.TokenSignKey = "" },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "bcrypt cost out of range",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.BcryptCost = 99 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "zero minimum password length",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.MinPasswordLength = 0 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "empty cookie name",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.CookieName = "" },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "unknown default role",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.DefaultRole = "superuser" },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing HTTP address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &StructuredConfig{
				Auth: Auth{
					TokenSignKey:      "secret",
					TokenIssuer:       "authgate",
					TokenDuration:     time.Hour,
					BcryptCost:        10,
					MinPasswordLength: 8,
					DefaultRole:       "user",
					CookieName:        "token",
				},
				Storage: Storage{DB: DB{DSN: "postgres://localhost/authgate"}},
				Server:  Server{HTTPAddress: "localhost:3000"},
			}
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
