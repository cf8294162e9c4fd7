package runs

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/zerotrim/zerotrim/internal/model"
)

// tableFromMask builds a table whose idle pattern matches mask.
// Non-idle rows get a nonzero action flag.
func tableFromMask(mask []bool) *model.Table {
	table := &model.Table{
		Header: []string{"tick", "action_x", "use_energy"},
	}
	for i, idle := range mask {
		flag := "1"
		if idle {
			flag = "0"
		}
		table.Rows = append(table.Rows, []string{strconv.Itoa(i), flag, "0"})
	}
	return table
}

// bruteForceRuns groups consecutive true entries without the scan logic
// under test.
func bruteForceRuns(mask []bool) []Run {
	var out []Run
	i := 0
	for i < len(mask) {
		if !mask[i] {
			i++
			continue
		}
		j := i
		for j+1 < len(mask) && mask[j+1] {
			j++
		}
		out = append(out, Run{Start: i, End: j})
		i = j + 1
	}
	return out
}

func TestDetectRuns(t *testing.T) {
	tests := []struct {
		name string
		mask []bool
		want []Run
	}{
		{"empty", nil, nil},
		{"no idle rows", []bool{false, false, false}, nil},
		{"fully idle", []bool{true, true, true}, []Run{{0, 2}}},
		{"single idle row", []bool{false, true, false}, []Run{{1, 1}}},
		{"run at start", []bool{true, true, false}, []Run{{0, 1}}},
		{"run at end", []bool{false, true, true}, []Run{{1, 2}}},
		{"adjacent runs separated", []bool{true, false, true}, []Run{{0, 0}, {2, 2}}},
		{"mixed", []bool{false, true, true, false, false, true, true, true, false, true}, []Run{{1, 2}, {5, 7}, {9, 9}}},
	}

	for _, tt := range tests {
		got := detectRuns(tt.mask)
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %d runs, want %d", tt.name, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: run %d = %+v, want %+v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDetectRuns_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(100)
		mask := make([]bool, n)
		for i := range mask {
			mask[i] = rng.Float64() < 0.7
		}

		got := detectRuns(mask)
		want := bruteForceRuns(mask)

		if len(got) != len(want) {
			t.Fatalf("trial %d: got %d runs, want %d (mask %v)", trial, len(got), len(want), mask)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("trial %d: run %d = %+v, want %+v", trial, i, got[i], want[i])
			}
		}
	}
}

func TestRunLength(t *testing.T) {
	if got := (Run{Start: 3, End: 3}).Length(); got != 1 {
		t.Errorf("single-row run length = %d, want 1", got)
	}
	if got := (Run{Start: 0, End: 11}).Length(); got != 12 {
		t.Errorf("run [0,11] length = %d, want 12", got)
	}
}
