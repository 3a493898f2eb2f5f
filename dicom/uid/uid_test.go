package uid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	valid := []string{
		"1.2.840.10008.1.2",
		"1.2.840.10008.1.2.1",
		"2.25.329800735698586629295641978511506172918",
		"0.0",
	}
	for _, s := range valid {
		assert.True(t, IsValid(s), s)
	}

	invalid := []string{
		"",
		"1",
		".1.2",
		"1.2.",
		"1..2",
		"1.02",
		"1.2.840.abc",
		strings.Repeat("1.", 40) + "1", // over 64 chars
	}
	for _, s := range invalid {
		assert.False(t, IsValid(s), s)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("1.2.840.10008.1.2.1"))
	assert.ErrorIs(t, Validate("not.a.uid."), ErrInvalidUID)
}

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		u := Generate()
		assert.True(t, IsValid(u), u)
		assert.True(t, strings.HasPrefix(u, "2.25."), u)
		assert.False(t, seen[u], "duplicate UID generated")
		seen[u] = true
	}
}

func TestTransferSyntaxName(t *testing.T) {
	assert.Equal(t, "Implicit VR Little Endian", TransferSyntaxName(ImplicitVRLittleEndian))
	assert.Equal(t, "JPEG Baseline (Process 1)", TransferSyntaxName(JPEGBaselineProcess1))
	assert.Empty(t, TransferSyntaxName("1.2.3.4"))
}
