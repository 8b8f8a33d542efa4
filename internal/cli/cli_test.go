package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodegrid/internal/app"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.Config
	}{
		{
			name: "positional path with defaults",
			args: []string{"main.js"},
			want: app.Config{ScriptPath: "main.js", LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "flag beats positional",
			args: []string{"-script", "a.js", "b.js"},
			want: app.Config{ScriptPath: "a.js", LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "shorthand and options",
			args: []string{"-s", "a.js", "-log-format", "JSON", "-log-level", "debug", "-timeout", "2s"},
			want: app.Config{ScriptPath: "a.js", LogFormat: "json", LogLevel: "debug", Timeout: 2 * time.Second},
		},
		{
			name: "list nodes needs no script",
			args: []string{"-list-nodes"},
			want: app.Config{ListNodes: true, LogFormat: "text", LogLevel: "info"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.False(t, shouldExit)
			assert.Equal(t, tc.want, *cfg)
		})
	}
}

func TestParse_ExitsCleanly(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {}} {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(args, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown flag", []string{"-nope"}, "flag provided but not defined: -nope"},
		{"bad format", []string{"-log-format", "xml", "a.js"}, "invalid log-format"},
		{"bad level", []string{"-log-level", "loud", "a.js"}, "invalid log-level"},
		{"negative timeout", []string{"-timeout", "-1s", "a.js"}, "Timeout cannot be negative"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
