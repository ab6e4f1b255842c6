package ratefile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"service-fxrates/internal"
)

func LoadCSV(path string, layouts []string) (*internal.RateTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := ReadCSV(f, layouts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

func ReadCSV(r io.Reader, layouts []string) (*internal.RateTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	b, err := newTableBuilder(header, layouts)
	if err != nil {
		return nil, err
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		date, ok := parseDate(rec[0], b.layouts)
		if !ok {
			b.skipped++
			continue
		}
		b.add(date, rec[1:])
	}
	return b.build()
}
