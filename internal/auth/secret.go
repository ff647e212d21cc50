package auth

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// MinSecretBytes is the minimum signing secret length accepted at
// startup. HS256 loses its security margin below the hash block size.
const MinSecretBytes = 32

// placeholderSecrets are development values that ship in example env
// files. They pass validation but are flagged so operators notice.
var placeholderSecrets = []string{
	"dev-secret",
	"changeme",
	"secret",
}

// ConfigurationError marks a fatal startup misconfiguration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// ValidateSecret checks the signing secret before any token is issued.
// A failure here must halt startup; the service cannot mint trust
// tokens with weak material.
func ValidateSecret(secret string, logger *zap.Logger) error {
	if secret == "" {
		return &ConfigurationError{Reason: "jwt secret is not set"}
	}
	if len([]byte(secret)) < MinSecretBytes {
		return &ConfigurationError{
			Reason: fmt.Sprintf("jwt secret must be at least %d bytes, got %d", MinSecretBytes, len([]byte(secret))),
		}
	}
	for _, placeholder := range placeholderSecrets {
		if strings.Contains(secret, placeholder) {
			logger.Warn("jwt secret matches a known development placeholder",
				zap.String("placeholder", placeholder))
			break
		}
	}
	return nil
}
