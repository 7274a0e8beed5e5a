package utils_test

import (
	"regexp"
	"testing"

	"github.com/foodlink-dev/foodlink/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)

	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code, err := utils.NewClaimCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}

	// 100 draws from a 36^6 space should effectively never collide.
	assert.Greater(t, len(seen), 95)
}
