package services

import (
	"fmt"
	"os"

	"google.golang.org/api/option"
)

// CredentialProvider yields the Google service-account credentials for
// the sheets client. Two variants exist: a key file on disk, or the full
// JSON document in a single environment variable.
type CredentialProvider interface {
	Name() string
	ClientOption() (option.ClientOption, error)
}

// FileCredentials loads a service-account key file from disk
type FileCredentials struct {
	Path string
}

func (f FileCredentials) Name() string {
	return fmt.Sprintf("key file %s", f.Path)
}

func (f FileCredentials) ClientOption() (option.ClientOption, error) {
	if _, err := os.Stat(f.Path); err != nil {
		return nil, fmt.Errorf("credentials file not readable: %w", err)
	}
	return option.WithCredentialsFile(f.Path), nil
}

// EnvCredentials reads the serialized credentials JSON from an
// environment variable
type EnvCredentials struct {
	Var string
}

func (e EnvCredentials) Name() string {
	return fmt.Sprintf("environment variable %s", e.Var)
}

func (e EnvCredentials) ClientOption() (option.ClientOption, error) {
	raw := os.Getenv(e.Var)
	if raw == "" {
		return nil, fmt.Errorf("environment variable %s is empty", e.Var)
	}
	return option.WithCredentialsJSON([]byte(raw)), nil
}

// ResolveCredentials picks the provider based on what is configured.
// The file path wins if both are set.
func ResolveCredentials() (CredentialProvider, error) {
	if path := os.Getenv("GOOGLE_CREDENTIALS_FILE"); path != "" {
		return FileCredentials{Path: path}, nil
	}
	if os.Getenv("GOOGLE_CREDENTIALS_JSON") != "" {
		return EnvCredentials{Var: "GOOGLE_CREDENTIALS_JSON"}, nil
	}
	return nil, fmt.Errorf("no Google credentials configured (set GOOGLE_CREDENTIALS_FILE or GOOGLE_CREDENTIALS_JSON)")
}
