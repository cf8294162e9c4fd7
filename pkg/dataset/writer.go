package dataset

import (
	"bufio"
	"io"
	"strings"

	"github.com/zerotrim/zerotrim/internal/model"
	"github.com/zerotrim/zerotrim/pkg/util"
)

// WriteCSV persists the table to w in the same delimited format the
// reader accepts: header first, then rows in order, fields quoted only
// when they embed the delimiter, a quote, or a line break.
func WriteCSV(w io.Writer, t *model.Table, opts CSVOptions) error {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	bw := bufio.NewWriter(w)

	if err := writeRecord(bw, t.Header, opts.Delimiter); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeRecord(bw, row, opts.Delimiter); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteCSVFile persists the table to path, gzip-compressing when the
// path carries a .gz suffix.
func WriteCSVFile(path string, t *model.Table, opts CSVOptions) error {
	w, cleanup, err := util.CreateFile(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(w, t, opts); err != nil {
		cleanup()
		return err
	}
	return cleanup()
}

func writeRecord(bw *bufio.Writer, fields []string, delim byte) error {
	for i, field := range fields {
		if i > 0 {
			if err := bw.WriteByte(delim); err != nil {
				return err
			}
		}
		if err := writeField(bw, field, delim); err != nil {
			return err
		}
	}
	return bw.WriteByte('\n')
}

func writeField(bw *bufio.Writer, field string, delim byte) error {
	if !needsQuoting(field, delim) {
		_, err := bw.WriteString(field)
		return err
	}

	if err := bw.WriteByte('"'); err != nil {
		return err
	}
	for i := 0; i < len(field); i++ {
		if field[i] == '"' {
			if _, err := bw.WriteString(`""`); err != nil {
				return err
			}
			continue
		}
		if err := bw.WriteByte(field[i]); err != nil {
			return err
		}
	}
	return bw.WriteByte('"')
}

func needsQuoting(field string, delim byte) bool {
	return strings.ContainsAny(field, string(delim)+"\"\r\n")
}
