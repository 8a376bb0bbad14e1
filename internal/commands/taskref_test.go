package commands_test

import (
	"testing"

	"chaintask/internal/commands"
)

func TestParseTaskNum(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr string
	}{
		{"simple", []string{"1"}, 1, ""},
		{"multi digit", []string{"42"}, 42, ""},
		{"leading zero", []string{"007"}, 7, ""},
		{"extra args ignored", []string{"3", "extra"}, 3, ""},
		{"zero parses", []string{"0"}, 0, ""},
		{"empty", nil, 0, "task number required"},
		{"letter", []string{"a1"}, 0, "invalid task number: a1"},
		{"negative", []string{"-2"}, 0, "invalid task number: -2"},
		{"empty string", []string{""}, 0, "invalid task number: "},
		{"unicode digits", []string{"١٢"}, 0, "invalid task number: ١٢"},
		{"overflow", []string{"99999999999999999999999"}, 0, "invalid task number: 99999999999999999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := commands.ParseTaskNum(tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
