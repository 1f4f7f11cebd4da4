package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Init("debug", false)
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Init("WARN", true)
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Init("loud", false)
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
