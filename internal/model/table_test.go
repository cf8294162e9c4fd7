package model

import "testing"

func TestActionColumns(t *testing.T) {
	tests := []struct {
		name       string
		header     []string
		wantFlag   int
		wantEnergy int
		wantOK     bool
	}{
		{"typical", []string{"hp", "dist", "action_x", "use_energy"}, 2, 3, true},
		{"two columns", []string{"action_x", "use_energy"}, 0, 1, true},
		{"one column", []string{"only"}, 0, 0, false},
		{"no columns", nil, 0, 0, false},
	}

	for _, tt := range tests {
		table := &Table{Header: tt.header}
		flag, energy, ok := table.ActionColumns()
		if ok != tt.wantOK {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if ok && (flag != tt.wantFlag || energy != tt.wantEnergy) {
			t.Errorf("%s: got (%d, %d), want (%d, %d)", tt.name, flag, energy, tt.wantFlag, tt.wantEnergy)
		}
	}
}

func TestIsIdle(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{"both integer zero", []string{"a", "0", "0"}, true},
		{"float zero", []string{"a", "0.0", "0.00"}, true},
		{"negative zero", []string{"a", "-0", "0"}, true},
		{"scientific zero", []string{"a", "0e0", "0"}, true},
		{"whitespace around zero", []string{"a", " 0 ", "0"}, true},
		{"flag nonzero", []string{"a", "1", "0"}, false},
		{"energy nonzero", []string{"a", "0", "0.5"}, false},
		{"both nonzero", []string{"a", "-1", "2"}, false},
		{"empty field", []string{"a", "", "0"}, false},
		{"non-numeric field", []string{"a", "x", "0"}, false},
		{"short row", []string{"a"}, false},
	}

	for _, tt := range tests {
		got := IsIdle(tt.row, 1, 2)
		if got != tt.want {
			t.Errorf("%s: IsIdle(%v) = %v, want %v", tt.name, tt.row, got, tt.want)
		}
	}
}
