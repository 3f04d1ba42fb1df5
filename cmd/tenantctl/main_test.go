// AngelaMos | 2026
// main_test.go

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{
		{"migrate"},
		{"keys", "generate"},
		{"users", "promote"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown migration", []string{"migrate", "sideways"}},
		{"missing migration", []string{"migrate"}},
		{"promote without email", []string{"users", "promote"}},
		{"generate with args", []string{"keys", "generate", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCommand()
			root.SetArgs(tt.args)
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})

			assert.Error(t, root.Execute())
		})
	}
}

func TestGenerateKeys(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}

	root := newRootCommand()
	root.SetOut(out)
	root.SetArgs([]string{
		"keys", "generate",
		"--private", dir + "/private.pem",
		"--public", dir + "/public.pem",
	})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "public.pem")
}
