package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintString(t *testing.T) {
	a := FingerprintString("SELECT 1")
	assert.Equal(t, a, FingerprintString("SELECT 1"))
	assert.NotEqual(t, a, FingerprintString("SELECT 2"))

	// FNV-1a offset basis
	assert.Equal(t, uint64(0xcbf29ce484222325), FingerprintString(""))
}
