package traceio_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"argus/internal/traceio"
)

func TestLoadSQLite_ReadsLongFormatSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE samples (time REAL, name TEXT, value REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO samples (time, name, value) VALUES
		(0, 'speed', 1.0), (1, 'speed', 2.0), (0, 'temp', 10.0)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	tr, err := traceio.LoadSQLite(path)
	require.NoError(t, err)

	speed, err := tr.ResolveFloat("speed")
	require.NoError(t, err)
	v, ok := speed.At(1)
	require.True(t, ok)
	require.Equal(t, 2.0, v)

	temp, err := tr.ResolveFloat("temp")
	require.NoError(t, err)
	v, ok = temp.At(0)
	require.True(t, ok)
	require.Equal(t, 10.0, v)
}
