package observability

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_SetsGlobalLevel(t *testing.T) {
	logger := InitLogger("ai-product-search", "production", "debug")

	require.NotNil(t, logger)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestInitLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	InitLogger("ai-product-search", "production", "chatty")

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
