package dataset

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/zerotrim/zerotrim/internal/model"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		opts       CSVOptions
		wantHeader []string
		wantRows   [][]string
	}{
		{
			name:       "plain",
			input:      "tick,action_x,use_energy\n1,0,0\n2,1,0\n",
			wantHeader: []string{"tick", "action_x", "use_energy"},
			wantRows:   [][]string{{"1", "0", "0"}, {"2", "1", "0"}},
		},
		{
			name:       "no trailing newline",
			input:      "a,b\n1,2",
			wantHeader: []string{"a", "b"},
			wantRows:   [][]string{{"1", "2"}},
		},
		{
			name:       "crlf line endings",
			input:      "a,b\r\n1,2\r\n",
			wantHeader: []string{"a", "b"},
			wantRows:   [][]string{{"1", "2"}},
		},
		{
			name:       "quoted field with delimiter",
			input:      "a,b\n\"x,y\",2\n",
			wantHeader: []string{"a", "b"},
			wantRows:   [][]string{{"x,y", "2"}},
		},
		{
			name:       "escaped quotes",
			input:      "a,b\n\"he said \"\"hi\"\"\",2\n",
			wantHeader: []string{"a", "b"},
			wantRows:   [][]string{{`he said "hi"`, "2"}},
		},
		{
			name:       "blank lines skipped",
			input:      "a,b\n1,2\n\n3,4\n",
			wantHeader: []string{"a", "b"},
			wantRows:   [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:       "header only",
			input:      "a,b\n",
			wantHeader: []string{"a", "b"},
			wantRows:   nil,
		},
		{
			name:       "semicolon delimiter",
			input:      "a;b\n1;2\n",
			opts:       CSVOptions{Delimiter: ';'},
			wantHeader: []string{"a", "b"},
			wantRows:   [][]string{{"1", "2"}},
		},
	}

	for _, tt := range tests {
		table, err := ReadCSV(strings.NewReader(tt.input), tt.opts)
		if err != nil {
			t.Errorf("%s: ReadCSV() error = %v", tt.name, err)
			continue
		}
		if !reflect.DeepEqual(table.Header, tt.wantHeader) {
			t.Errorf("%s: header = %v, want %v", tt.name, table.Header, tt.wantHeader)
		}
		if !reflect.DeepEqual(table.Rows, tt.wantRows) {
			t.Errorf("%s: rows = %v, want %v", tt.name, table.Rows, tt.wantRows)
		}
	}
}

func TestReadCSV_EmptyFile(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader(""), DefaultCSVOptions()); err != ErrEmptyFile {
		t.Errorf("ReadCSV(empty) error = %v, want ErrEmptyFile", err)
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	table := &model.Table{
		Header: []string{"tick", "note", "action_x", "use_energy"},
		Rows: [][]string{
			{"1", "plain", "0", "0"},
			{"2", "has,comma", "1", "0"},
			{"3", `has"quote`, "0", "0.5"},
			{"4", "", "0", "0"},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table, DefaultCSVOptions()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	got, err := ReadCSV(&buf, DefaultCSVOptions())
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if !reflect.DeepEqual(got.Header, table.Header) {
		t.Errorf("header = %v, want %v", got.Header, table.Header)
	}
	if !reflect.DeepEqual(got.Rows, table.Rows) {
		t.Errorf("rows = %v, want %v", got.Rows, table.Rows)
	}
}

func TestCSVFile_GzipRoundTrip(t *testing.T) {
	table := &model.Table{
		Header: []string{"tick", "action_x", "use_energy"},
		Rows:   [][]string{{"1", "0", "0"}, {"2", "3", "1"}},
	}

	path := filepath.Join(t.TempDir(), "run.csv.gz")
	if err := WriteCSVFile(path, table, DefaultCSVOptions()); err != nil {
		t.Fatalf("WriteCSVFile() error = %v", err)
	}

	got, err := ReadCSVFile(path, DefaultCSVOptions())
	if err != nil {
		t.Fatalf("ReadCSVFile() error = %v", err)
	}

	if !reflect.DeepEqual(got.Rows, table.Rows) {
		t.Errorf("rows = %v, want %v", got.Rows, table.Rows)
	}
}

func TestReadFile_UnsupportedFormat(t *testing.T) {
	if _, err := ReadFile("dataset.parquet", DefaultCSVOptions()); err != ErrUnsupportedFormat {
		t.Errorf("ReadFile() error = %v, want ErrUnsupportedFormat", err)
	}
}
