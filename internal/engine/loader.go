package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	arrowcsv "github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/labstack/gommon/log"
)

// rows per Arrow record batch
const chunkRows = 512

// Loader reads header-delimited CSV files through the Arrow CSV reader.
// Every column is loaded as a string column, so values reach callers exactly
// as they appear in the file.
type Loader struct {
	mem    memory.Allocator
	logger *log.Logger
}

func NewLoader(mem memory.Allocator, logger *log.Logger) *Loader {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	if logger == nil {
		logger = quietLogger()
	}
	return &Loader{mem: mem, logger: logger}
}

func quietLogger() *log.Logger {
	l := log.New("engine")
	l.SetOutput(io.Discard)
	return l
}

var defaultLoader = NewLoader(nil, nil)

// ReadColumn reads one named column from a CSV file with a header row.
func ReadColumn(path, field string) ([]string, error) {
	return defaultLoader.ReadColumn(path, field)
}

// ReadDict reads a CSV file with a header row into a keyField -> valueField
// mapping. A repeated key keeps the value of its last row.
func ReadDict(path, keyField, valueField string) (LookupMap, error) {
	return defaultLoader.ReadDict(path, keyField, valueField)
}

func (l *Loader) ReadColumn(path, field string) ([]string, error) {
	column := []string{}
	err := l.scan(path, []string{field}, func(row []string) error {
		column = append(column, row[0])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

func (l *Loader) ReadDict(path, keyField, valueField string) (LookupMap, error) {
	dict := make(LookupMap)
	err := l.scan(path, []string{keyField, valueField}, func(row []string) error {
		dict[row[0]] = row[1]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dict, nil
}

// scan calls fn once per data row with the values of fields, in file order.
// A field missing from the header fails on the first data row, so a
// header-only file never fails on column names.
func (l *Loader) scan(path string, fields []string, fn func(row []string) error) error {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return fileNotFound(path, err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if errors.Is(err, io.EOF) {
		l.logger.Debugf("%s is empty", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	// Last occurrence wins on duplicated header names.
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	cols := make([]int, len(fields))
	for i, name := range fields {
		idx, ok := index[name]
		if !ok {
			idx = -1
		}
		cols[i] = idx
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind %s: %w", path, err)
	}

	schemaFields := make([]arrow.Field, len(header))
	for i, name := range header {
		schemaFields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String}
	}
	rdr := arrowcsv.NewReader(f, arrow.NewSchema(schemaFields, nil),
		arrowcsv.WithHeader(true),
		arrowcsv.WithChunk(chunkRows),
		arrowcsv.WithAllocator(l.mem),
	)
	defer rdr.Release()

	rows := 0
	row := make([]string, len(fields))
	for rdr.Next() {
		rec := rdr.Record()
		arrays := make([]*array.String, len(fields))
		for i, idx := range cols {
			if idx < 0 {
				return missingColumn(path, fields[i], rows+1)
			}
			arrays[i] = rec.Column(idx).(*array.String)
		}
		n := int(rec.NumRows())
		for r := 0; r < n; r++ {
			for i, a := range arrays {
				// Value aliases the Arrow buffer, which is recycled once the batch is released.
				row[i] = strings.Clone(a.Value(r))
			}
			rows++
			if err := fn(row); err != nil {
				return err
			}
		}
	}
	if err := rdr.Err(); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	l.logger.Debugf("read %d rows from %s in %v", rows, path, time.Since(start))
	return nil
}
