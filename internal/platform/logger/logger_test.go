package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseLevel(in), in)
	}
}

func TestParseFormat(t *testing.T) {
	require.Equal(t, FormatText, ParseFormat("console"))
	require.Equal(t, FormatText, ParseFormat("TEXT"))
	require.Equal(t, FormatJSON, ParseFormat(""))
	require.Equal(t, FormatJSON, ParseFormat("json"))
}

func TestNew_RespectsLevel(t *testing.T) {
	l := New(Options{Level: zapcore.WarnLevel, Format: FormatJSON, App: "health-vault"})
	require.NotNil(t, l)
	require.False(t, l.Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}
