package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHealthCommand_SQLite(t *testing.T) {
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "links.db")
	out, err := runCLI(t, "health", "--store-url", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "Store connection OK")
}

func TestHealthCommand_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	out, err := runCLI(t, "health", "--store-url", "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	assert.Contains(t, out, "Store connection OK")
}

func TestHealthCommand_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := runCLI(t, "health", "--store-url", "redis://"+addr+"/0", "--timeout", "500ms")
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "urlshorty version")
}
