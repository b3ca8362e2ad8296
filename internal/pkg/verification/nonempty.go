package verification

import (
	"context"
	"strings"
)

// NonEmptyProvider accepts any non-empty proof for an enrolled template. This
// mirrors kiosk fingerprint scanners that do the matching on-device and only
// post an opaque payload to the server.
type NonEmptyProvider struct {
	name string
}

func NewNonEmptyProvider(name string) *NonEmptyProvider {
	return &NonEmptyProvider{name: name}
}

func (p *NonEmptyProvider) Name() string {
	return p.name
}

func (p *NonEmptyProvider) Verify(_ context.Context, template *string, proof string) error {
	if template == nil || strings.TrimSpace(*template) == "" {
		return ErrVerificationFailed
	}
	if strings.TrimSpace(proof) == "" {
		return ErrVerificationFailed
	}
	return nil
}
