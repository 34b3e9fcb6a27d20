package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"capsum/internal/services"
)

// ErrCredentialMissing reports an absent or blank credential file.
var ErrCredentialMissing = errors.New("credential missing")

// ReadCredential returns the trimmed bearer token stored at path.
func ReadCredential(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrConfiguration, "summarize", "read credential", path, ErrCredentialMissing)
		}
		return "", services.Wrap(services.ErrConfiguration, "summarize", "read credential", path, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", services.Wrap(services.ErrConfiguration, "summarize", "read credential", fmt.Sprintf("%s is empty", path), ErrCredentialMissing)
	}
	return token, nil
}
