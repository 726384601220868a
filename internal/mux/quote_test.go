package mux

import "testing"

func TestStartCommand(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"plain words", []string{"/usr/bin/ranger", "--", "."}, "/usr/bin/ranger -- ."},
		{"space in path", []string{"/tmp/a b/ranger", "--", "."}, `"/tmp/a b/ranger" -- .`},
		{"tail with space", []string{"/tmp/a b/tail", "-f", "/dev/null"}, `"/tmp/a b/tail" -f /dev/null`},
		{"dollar is escaped", []string{"/opt/$HOME/ranger"}, `"/opt/\$HOME/ranger"`},
		{"double quote with space", []string{`say "hi" now`}, `"say \"hi\" now"`},
		{"only a double quote", []string{`a"b`}, `'a"b'`},
		{"backslash outside quotes", []string{`a\b`}, `a\\b`},
		{"backslash inside quotes", []string{`a b\c`}, `"a b\\c"`},
		{"format character", []string{"50%"}, `"50%"`},
		{"single special character", []string{"--", ";"}, `-- \;`},
		{"leading tilde", []string{"~/bin/ranger"}, `\~/bin/ranger`},
		{"leading tilde quoted", []string{"~/my bin/ranger"}, `"\~/my bin/ranger"`},
		{"empty argument", []string{"ranger", ""}, "ranger ''"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartCommand(tt.argv); got != tt.want {
				t.Errorf("StartCommand(%q) = %s, want %s", tt.argv, got, tt.want)
			}
		})
	}
}
