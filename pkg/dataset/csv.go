// Package dataset loads and persists training tables. It is the I/O
// collaborator around pkg/runs: readers produce an ordered model.Table,
// writers persist one, and the core never touches the filesystem.
package dataset

import (
	"bufio"
	"io"

	"github.com/zerotrim/zerotrim/internal/model"
	"github.com/zerotrim/zerotrim/pkg/util"
)

// CSVOptions configures delimited-text reading and writing.
type CSVOptions struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter byte
}

// DefaultCSVOptions returns comma-delimited defaults.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: ','}
}

// ReadCSV parses a delimited table with a header row from r.
// Quoted fields may embed delimiters and escaped ("") quotes. Blank
// lines are skipped. Row width is not validated beyond the header
// requirement; the core locates its columns positionally.
func ReadCSV(r io.Reader, opts CSVOptions) (*model.Table, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	reader := bufio.NewReader(r)

	headerLine, err := readLine(reader)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(headerLine) == 0 {
		return nil, ErrEmptyFile
	}

	table := &model.Table{
		Header: splitLine(headerLine, opts.Delimiter),
	}

	for {
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(line) > 0 {
			table.Rows = append(table.Rows, splitLine(line, opts.Delimiter))
		}
		if err == io.EOF {
			break
		}
	}

	return table, nil
}

// ReadCSVFile loads a delimited table from path, decompressing .gz
// transparently.
func ReadCSVFile(path string, opts CSVOptions) (*model.Table, error) {
	r, cleanup, err := util.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return ReadCSV(r, opts)
}

// readLine returns the next line without its trailing \n / \r bytes.
func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, err
}

// splitLine parses one delimited line into fields using byte-level
// scanning. Handles quoted fields with embedded delimiters and quotes.
func splitLine(line []byte, delim byte) []string {
	fields := make([]string, 0, 16)
	start := 0
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]

		if c == '"' {
			if !inQuotes {
				inQuotes = true
			} else if i+1 < len(line) && line[i+1] == '"' {
				i++ // escaped quote
			} else {
				inQuotes = false
			}
		} else if c == delim && !inQuotes {
			fields = append(fields, unquoteField(line[start:i]))
			start = i + 1
		}
	}
	fields = append(fields, unquoteField(line[start:]))

	return fields
}

// unquoteField removes surrounding quotes and unescapes embedded quotes.
func unquoteField(field []byte) string {
	if len(field) < 2 || field[0] != '"' || field[len(field)-1] != '"' {
		return string(field)
	}

	field = field[1 : len(field)-1]
	result := make([]byte, 0, len(field))
	for i := 0; i < len(field); i++ {
		if field[i] == '"' && i+1 < len(field) && field[i+1] == '"' {
			result = append(result, '"')
			i++
		} else {
			result = append(result, field[i])
		}
	}
	return string(result)
}
