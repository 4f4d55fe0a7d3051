package security

import (
	"errors"
	"strings"
)

// ServiceCredential is the backend-only secret that authorizes writes
// crossing per-row ownership boundaries (inserting a booking on behalf of a
// client, appending a notification to someone else's inbox). Handlers that
// need it report its absence as a configuration error instead of failing
// silently.
type ServiceCredential string

var ErrServiceCredentialMissing = errors.New("security: service role credential not configured, set SERVICE_ROLE_KEY")

func (c ServiceCredential) Check() error {
	if strings.TrimSpace(string(c)) == "" {
		return ErrServiceCredentialMissing
	}
	return nil
}
