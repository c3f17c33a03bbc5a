package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCheckArgs_DefaultsToBoolMode(t *testing.T) {
	opts, err := parseCheckArgs([]string{"x < 1", "trace.csv"})
	require.NoError(t, err)
	assert.Equal(t, "bool", opts.mode)
	assert.Equal(t, "x < 1", opts.formula)
	assert.Equal(t, "trace.csv", opts.file)
}

func TestParseCheckArgs_RejectsUnknownMode(t *testing.T) {
	_, err := parseCheckArgs([]string{"x < 1", "trace.csv", "--mode", "quantum"})
	require.Error(t, err)
}

func TestParseCheckArgs_RejectsWrongArgCount(t *testing.T) {
	_, err := parseCheckArgs([]string{"x < 1"})
	require.Error(t, err)
}

func TestRunFmt_PrintsCanonicalFormula(t *testing.T) {
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	runErr := runFmt([]string{"a&&b"})

	w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	os.Stdout = old

	require.NoError(t, runErr)
	assert.Contains(t, buf.String(), "&&")
}

func TestRunFmt_RejectsWrongArgCount(t *testing.T) {
	err := runFmt(nil)
	require.Error(t, err)
}

func TestLoadTrace_RejectsUnknownExtension(t *testing.T) {
	_, err := loadTrace("trace.bin")
	require.Error(t, err)
}
