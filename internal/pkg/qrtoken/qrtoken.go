package qrtoken

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generate builds the payload encoded into an employee's badge QR code:
// "<employee_code>:<email>:<random uuid>". The uuid component makes the token
// globally unique; it is generated once at registration and never rotated.
func Generate(employeeCode, email string) string {
	return fmt.Sprintf("%s:%s:%s", employeeCode, email, uuid.NewString())
}

// EmployeeCode extracts the employee-code prefix from a scanned token.
// Returns false if the token does not have the expected three segments.
func EmployeeCode(token string) (string, bool) {
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 || parts[0] == "" {
		return "", false
	}
	return parts[0], true
}
