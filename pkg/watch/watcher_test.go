package watch

import (
	"testing"
	"time"
)

func TestWatcher_Wants(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), "_reduced", 100*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	tests := []struct {
		path string
		want bool
	}{
		{"episode1.csv", true},
		{"episode1.csv.gz", true},
		{"export.xlsx", true},
		{"episode1_reduced.csv", false}, // our own output
		{"notes.txt", false},
		{"dataset.parquet", false},
	}

	for _, tt := range tests {
		if got := w.wants(tt.path); got != tt.want {
			t.Errorf("wants(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
