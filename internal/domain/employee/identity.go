package employee

import "context"

// IdentityKind discriminates how an inbound event names an employee.
type IdentityKind string

const (
	// IdentityQR carries the raw payload scanned from a badge QR code.
	IdentityQR IdentityKind = "qr"
	// IdentityDeclared carries an employee code typed at a kiosk.
	IdentityDeclared IdentityKind = "declared"
	// IdentitySession carries the user id of an authenticated session.
	IdentitySession IdentityKind = "session"
)

// Identity is the tagged variant handed to the attendance engine. All three
// shapes resolve through the same Directory lookup.
type Identity struct {
	Kind  IdentityKind
	Value string
}

func QRIdentity(token string) Identity {
	return Identity{Kind: IdentityQR, Value: token}
}

func DeclaredIdentity(employeeCode string) Identity {
	return Identity{Kind: IdentityDeclared, Value: employeeCode}
}

func SessionIdentity(userID string) Identity {
	return Identity{Kind: IdentitySession, Value: userID}
}

// Directory resolves an Identity to an active employee. Unknown tokens
// resolve to ErrEmployeeNotFound, revoked ones to ErrEmployeeInactive.
type Directory interface {
	Resolve(ctx context.Context, identity Identity) (Employee, error)
}
