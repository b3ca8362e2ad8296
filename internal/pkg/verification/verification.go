package verification

import (
	"context"
	"errors"
	"strings"
)

var ErrVerificationFailed = errors.New("verification failed")

// Provider verifies a check-in proof against the template enrolled for an
// employee. template is nil when the employee has nothing enrolled.
type Provider interface {
	Name() string
	Verify(ctx context.Context, template *string, proof string) error
}

// Registry maps a verification method name to its provider.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// ForTemplate picks the provider for an enrolled template. A template may
// carry a scheme prefix naming a registered provider ("totp:SECRET"); the
// prefix is stripped before verification. Bare templates go to the provider
// registered under fallback.
func (r *Registry) ForTemplate(template *string, fallback string) (Provider, *string, bool) {
	if template != nil {
		if scheme, rest, found := strings.Cut(*template, ":"); found {
			if p, ok := r.providers[scheme]; ok {
				return p, &rest, true
			}
		}
	}
	p, ok := r.providers[fallback]
	return p, template, ok
}
