// Package traceio loads a trace.Trace from an external, already-recorded
// source: a CSV file or a sqlite database. Both loaders are batch-only —
// they read a finished recording into memory once, they don't watch a
// live source.
package traceio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"argus/signal"
	"argus/trace"
)

// LoadCSV reads a wide-format CSV: a header row of column names, the first
// of which must be "time", the rest one per variable. Each variable's
// column is sniffed independently as bool ("true"/"false" throughout),
// int64 (every value parses as an integer), or float64 (the fallback).
func LoadCSV(path string) (*trace.Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("traceio: opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("traceio: reading header of %s: %w", path, err)
	}
	if len(header) < 2 || header[0] != "time" {
		return nil, fmt.Errorf("traceio: %s must have \"time\" as its first column", path)
	}
	names := header[1:]

	var times []float64
	columns := make([][]string, len(names))
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("traceio: reading %s: %w", path, err)
		}
		if len(row) != len(header) {
			return nil, fmt.Errorf("traceio: %s: row has %d columns, want %d", path, len(row), len(header))
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("traceio: %s: invalid time value %q: %w", path, row[0], err)
		}
		times = append(times, t)
		for i := range names {
			columns[i] = append(columns[i], row[i+1])
		}
	}

	tr := trace.New()
	for i, name := range names {
		if err := addCSVColumn(tr, name, times, columns[i]); err != nil {
			return nil, fmt.Errorf("traceio: %s: column %q: %w", path, name, err)
		}
	}
	return tr, nil
}

func addCSVColumn(tr *trace.Trace, name string, times []float64, values []string) error {
	switch sniffColumnKind(values) {
	case signal.KindBool:
		samples := make([]signal.Sample[bool], len(values))
		for i, v := range values {
			samples[i] = signal.Sample[bool]{Time: times[i], Value: v == "true"}
		}
		s, err := signal.FromSamples(signal.Constant, samples)
		if err != nil {
			return err
		}
		tr.WithBool(name, s)
	case signal.KindInt:
		samples := make([]signal.Sample[int64], len(values))
		for i, v := range values {
			n, _ := strconv.ParseInt(v, 10, 64)
			samples[i] = signal.Sample[int64]{Time: times[i], Value: n}
		}
		s, err := signal.FromSamples(signal.Constant, samples)
		if err != nil {
			return err
		}
		tr.WithInt(name, s)
	default:
		samples := make([]signal.Sample[float64], len(values))
		for i, v := range values {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid float value %q: %w", v, err)
			}
			samples[i] = signal.Sample[float64]{Time: times[i], Value: f}
		}
		s, err := signal.FromSamples(signal.Linear, samples)
		if err != nil {
			return err
		}
		tr.WithFloat(name, s)
	}
	return nil
}

func sniffColumnKind(values []string) signal.Kind {
	allBool, allInt := true, true
	for _, v := range values {
		if v != "true" && v != "false" {
			allBool = false
		}
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			allInt = false
		}
	}
	switch {
	case allBool:
		return signal.KindBool
	case allInt:
		return signal.KindInt
	default:
		return signal.KindFloat
	}
}
