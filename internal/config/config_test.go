package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		secretKey   string
		authSecret  string
		expectedErr string
	}{
		{
			name:       "Segredos configurados",
			secretKey:  "chave-de-producao-32-caracteres!",
			authSecret: "jwt-de-producao",
		},
		{
			name:        "SECRET_KEY com valor de exemplo",
			secretKey:   DefaultSecretKey,
			authSecret:  "jwt-de-producao",
			expectedErr: "SECRET_KEY",
		},
		{
			name:        "AUTH_SECRET com valor de exemplo",
			secretKey:   "chave-de-producao-32-caracteres!",
			authSecret:  DefaultAuthSecret,
			expectedErr: "AUTH_SECRET",
		},
		{
			name:        "AUTH_SECRET vazio",
			secretKey:   "chave-de-producao-32-caracteres!",
			authSecret:  "",
			expectedErr: "AUTH_SECRET",
		},
		{
			name:        "SECRET_KEY vazio",
			secretKey:   "",
			authSecret:  "jwt-de-producao",
			expectedErr: "SECRET_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SecretKey: tt.secretKey, Auth: Auth{Secret: tt.authSecret}}

			err := cfg.Validate()
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}

			assert.ErrorContains(t, err, tt.expectedErr)
		})
	}
}
