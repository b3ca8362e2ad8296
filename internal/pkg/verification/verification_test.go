package verification

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNonEmptyProvider(t *testing.T) {
	p := NewNonEmptyProvider("fingerprint")
	ctx := context.Background()

	assert.NoError(t, p.Verify(ctx, strPtr("enrolled-template"), "scan-payload"))
	assert.ErrorIs(t, p.Verify(ctx, strPtr("enrolled-template"), ""), ErrVerificationFailed)
	assert.ErrorIs(t, p.Verify(ctx, strPtr("   "), "scan-payload"), ErrVerificationFailed)
	assert.ErrorIs(t, p.Verify(ctx, nil, "scan-payload"), ErrVerificationFailed)
}

func TestTOTPProvider(t *testing.T) {
	secret, otpauthURL, err := GenerateTOTPSecret("attendly", "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.Contains(t, otpauthURL, "otpauth://")

	code, err := totp.GenerateCodeCustom(secret, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)

	p := NewTOTPProvider("totp")
	ctx := context.Background()

	assert.NoError(t, p.Verify(ctx, &secret, code))
	assert.ErrorIs(t, p.Verify(ctx, &secret, "12345"), ErrVerificationFailed)
	assert.ErrorIs(t, p.Verify(ctx, nil, code), ErrVerificationFailed)
}

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry(
		NewNonEmptyProvider("fingerprint"),
		NewTOTPProvider("totp"),
	)

	p, ok := registry.Get("fingerprint")
	require.True(t, ok)
	assert.Equal(t, "fingerprint", p.Name())

	_, ok = registry.Get("retina")
	assert.False(t, ok)
}

func TestRegistryForTemplate(t *testing.T) {
	registry := NewRegistry(
		NewNonEmptyProvider("fingerprint"),
		NewTOTPProvider("totp"),
	)

	// Scheme-prefixed template selects its provider and strips the prefix
	p, template, ok := registry.ForTemplate(strPtr("totp:JBSWY3DPEHPK3PXP"), "fingerprint")
	require.True(t, ok)
	assert.Equal(t, "totp", p.Name())
	require.NotNil(t, template)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", *template)

	// Bare template falls back to the method's provider untouched
	p, template, ok = registry.ForTemplate(strPtr("scan-template"), "fingerprint")
	require.True(t, ok)
	assert.Equal(t, "fingerprint", p.Name())
	require.NotNil(t, template)
	assert.Equal(t, "scan-template", *template)

	// Unregistered prefix is treated as part of the template
	p, _, ok = registry.ForTemplate(strPtr("iso19794:blob"), "fingerprint")
	require.True(t, ok)
	assert.Equal(t, "fingerprint", p.Name())

	_, _, ok = registry.ForTemplate(nil, "retina")
	assert.False(t, ok)
}
