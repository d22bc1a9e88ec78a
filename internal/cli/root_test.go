package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "rdf-test-suite <engine> <manifest-url>", cmd.Use)
	assert.Contains(t, cmd.Long, "Options:")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"history", "report"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestRootFlags(t *testing.T) {
	cmd := NewRootCommand()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"output", "o", "detailed"},
		{"properties", "p", ""},
		{"specification", "s", ""},
		{"cache", "c", ""},
		{"exit-zero", "e", "false"},
		{"include-unassociated", "", "false"},
		{"test-pattern", "t", ""},
		{"descriptor", "", "package.json"},
		{"db", "", ""},
		{"concurrency", "", "0"},
		{"engine-timeout", "", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}

	assert.Equal(t, ".rdf-test-suite-cache", cmd.Flags().Lookup("cache").NoOptDefVal)
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	for name, def := range map[string]string{"config": "", "log-level": "warn", "log-format": "text"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, def, flag.DefValue, name)
	}
}

func TestInDir(t *testing.T) {
	assert.Equal(t, "/work/cache", inDir("/work", "cache"))
	assert.Equal(t, "/abs/cache", inDir("/work", "/abs/cache"))
	assert.Equal(t, "", inDir("/work", ""))
}

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"separate value", []string{"e", "m", "-c", "dir"}, []string{"e", "m", "-c=dir"}},
		{"long separate value", []string{"e", "m", "--cache", "dir"}, []string{"e", "m", "--cache=dir"}},
		{"bare at end", []string{"e", "m", "-c"}, []string{"e", "m", "-c"}},
		{"bare before flag", []string{"e", "m", "-c", "-e"}, []string{"e", "m", "-c", "-e"}},
		{"attached", []string{"e", "m", "-c=dir"}, []string{"e", "m", "-c=dir"}},
		{"after terminator", []string{"--", "-c", "dir"}, []string{"--", "-c", "dir"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeArgs(tt.in))
		})
	}
}
