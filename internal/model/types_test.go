package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestWindowRowsForPercent(t *testing.T) {
	tests := []struct {
		name    string
		height  int
		percent int
		want    int
	}{
		{"quarter of 40", 40, 25, 10},
		{"rounds down", 41, 25, 10},
		{"sixty of 53", 53, 60, 31},
		{"zero percent", 40, 0, 0},
		{"full height", 40, 100, 40},
		{"empty window", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window{Height: tt.height}.RowsForPercent(tt.percent)
			if got != tt.want {
				t.Errorf("RowsForPercent(%d) with height %d = %d, want %d", tt.percent, tt.height, got, tt.want)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if got := StateOpen.String(); got != "open" {
		t.Errorf("StateOpen.String() = %q, want %q", got, "open")
	}
	if got := StateClosed.String(); got != "closed" {
		t.Errorf("StateClosed.String() = %q, want %q", got, "closed")
	}
	if got := State(7).String(); got != "State(7)" {
		t.Errorf("State(7).String() = %q, want %q", got, "State(7)")
	}
}

func TestPaneJSON_OmitsEmptyOptionalFields(t *testing.T) {
	data, err := json.Marshal(Pane{ID: "%1", PID: 42})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, field := range []string{"height", "current_path"} {
		if strings.Contains(s, field) {
			t.Errorf("expected %q to be omitted, got %s", field, s)
		}
	}
	if !strings.Contains(s, `"start_command":""`) {
		t.Errorf("start_command must always be present, got %s", s)
	}
}
