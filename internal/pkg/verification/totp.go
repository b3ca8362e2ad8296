package verification

import (
	"context"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTPProvider verifies a 6-digit TOTP code against the secret enrolled for
// the employee. Used for kiosk check-in where no scanner hardware exists.
type TOTPProvider struct {
	name string
}

func NewTOTPProvider(name string) *TOTPProvider {
	return &TOTPProvider{name: name}
}

func (p *TOTPProvider) Name() string {
	return p.name
}

func (p *TOTPProvider) Verify(_ context.Context, template *string, proof string) error {
	if template == nil || *template == "" {
		return ErrVerificationFailed
	}

	ok, err := totp.ValidateCustom(proof, *template, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil || !ok {
		return ErrVerificationFailed
	}
	return nil
}

// GenerateTOTPSecret enrolls a new TOTP secret for an employee.
func GenerateTOTPSecret(issuer, accountName string) (secret string, otpauthURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}
