package chat

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymousUsername_Format(t *testing.T) {
	pattern := regexp.MustCompile(
		"^(" + strings.Join(anonAdjectives, "|") + ")" +
			"(" + strings.Join(anonNouns, "|") + ")" +
			`(\d{3})$`)

	for i := 0; i < 200; i++ {
		name := anonymousUsername()
		m := pattern.FindStringSubmatch(name)
		require.NotNil(t, m, "unexpected username %q", name)

		n, err := strconv.Atoi(m[3])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100)
		assert.LessOrEqual(t, n, 999)
	}
}

func TestAnonymousUsername_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[anonymousUsername()] = true
	}
	assert.Greater(t, len(seen), 1)
}
