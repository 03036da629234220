package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":       slog.LevelInfo,
		"info":   slog.LevelInfo,
		"DEBUG":  slog.LevelDebug,
		"warn":   slog.LevelWarn,
		"INFO+2": slog.LevelInfo + 2,
		"error":  slog.LevelError,
		"bogus":  slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}
