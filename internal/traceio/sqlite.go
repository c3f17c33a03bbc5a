package traceio

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"argus/signal"
	"argus/trace"
)

// LoadSQLite reads a long-format trace from a sqlite database: a single
// "samples" table with columns (time REAL, name TEXT, value REAL), one row
// per observation. Every variable comes back as a Float signal — sqlite's
// dynamic typing gives no reliable way to recover the original element kind
// from a REAL column, so callers needing bool/int semantics should go
// through LoadCSV instead.
func LoadSQLite(path string) (*trace.Trace, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("traceio: opening %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT time, name, value FROM samples ORDER BY name, time`)
	if err != nil {
		return nil, fmt.Errorf("traceio: querying %s: %w", path, err)
	}
	defer rows.Close()

	order := make([]string, 0)
	byName := make(map[string][]signal.Sample[float64])
	for rows.Next() {
		var t, v float64
		var name string
		if err := rows.Scan(&t, &name, &v); err != nil {
			return nil, fmt.Errorf("traceio: scanning row from %s: %w", path, err)
		}
		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = append(byName[name], signal.Sample[float64]{Time: t, Value: v})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("traceio: reading %s: %w", path, err)
	}

	tr := trace.New()
	for _, name := range order {
		s, err := signal.FromSamples(signal.Linear, byName[name])
		if err != nil {
			return nil, fmt.Errorf("traceio: %s: variable %q: %w", path, name, err)
		}
		tr.WithFloat(name, s)
	}
	return tr, nil
}
