package traceio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argus/internal/traceio"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCSV_MixedColumnKinds(t *testing.T) {
	path := writeTempCSV(t, "time,flag,count,speed\n0,true,1,1.5\n1,false,2,2.5\n")
	tr, err := traceio.LoadCSV(path)
	require.NoError(t, err)

	b, err := tr.ResolveBool("flag")
	require.NoError(t, err)
	v, ok := b.At(0)
	require.True(t, ok)
	assert.True(t, v)

	i, err := tr.ResolveInt("count")
	require.NoError(t, err)
	iv, ok := i.At(1)
	require.True(t, ok)
	assert.Equal(t, int64(2), iv)

	f, err := tr.ResolveFloat("speed")
	require.NoError(t, err)
	fv, ok := f.At(0)
	require.True(t, ok)
	assert.Equal(t, 1.5, fv)
}

func TestLoadCSV_RequiresTimeFirstColumn(t *testing.T) {
	path := writeTempCSV(t, "flag,time\ntrue,0\n")
	_, err := traceio.LoadCSV(path)
	require.Error(t, err)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := traceio.LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
