package config

import (
	"context"
	"os"
	"strings"
)

// BrevoAPIKeyEnv is the environment variable holding the Brevo API key.
const BrevoAPIKeyEnv = "BREVO_API_KEY"

// SecretSource resolves secrets at request time. Secrets are not part of
// Config so that rotating or removing one takes effect without a restart.
type SecretSource interface {
	BrevoAPIKey(ctx context.Context) string
}

// EnvSecrets reads secrets from the process environment on every call.
type EnvSecrets struct{}

func NewEnvSecrets() *EnvSecrets {
	return &EnvSecrets{}
}

// BrevoAPIKey returns the trimmed key or "" when unset.
func (EnvSecrets) BrevoAPIKey(_ context.Context) string {
	return strings.TrimSpace(os.Getenv(BrevoAPIKeyEnv))
}

// StaticSecrets serves fixed values. Useful for tests and one-off tooling.
type StaticSecrets struct {
	APIKey string
}

func (s StaticSecrets) BrevoAPIKey(_ context.Context) string {
	return s.APIKey
}
