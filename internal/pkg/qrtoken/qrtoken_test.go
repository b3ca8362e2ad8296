package qrtoken

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	token := Generate("EMP0A1B2C3D", "alice@example.com")

	parts := strings.SplitN(token, ":", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "EMP0A1B2C3D", parts[0])
	assert.Equal(t, "alice@example.com", parts[1])
	assert.NotEmpty(t, parts[2])

	// Tokens are unique across generations for the same employee
	assert.NotEqual(t, token, Generate("EMP0A1B2C3D", "alice@example.com"))
}

func TestEmployeeCode(t *testing.T) {
	code, ok := EmployeeCode("EMP0A1B2C3D:alice@example.com:some-uuid")
	require.True(t, ok)
	assert.Equal(t, "EMP0A1B2C3D", code)

	_, ok = EmployeeCode("garbage")
	assert.False(t, ok)

	_, ok = EmployeeCode(":missing@code.com:uuid")
	assert.False(t, ok)
}
