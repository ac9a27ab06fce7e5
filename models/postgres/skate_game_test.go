package postgres

import (
	"strings"
	"testing"

	constants "SkateHubba/constants/skate"

	"github.com/stretchr/testify/assert"
)

func TestGenerateGameCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateGameCode(constants.GameCodeLength)
		assert.Len(t, code, constants.GameCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeCharset, r),
				"code %q contains unexpected character %q", code, r)
		}
	}
}

func TestGenerateGameCodeLength(t *testing.T) {
	assert.Len(t, GenerateGameCode(4), 4)
	assert.Len(t, GenerateGameCode(10), 10)
	assert.Empty(t, GenerateGameCode(0))
}
