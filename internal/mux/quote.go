package mux

import "strings"

// Characters that make tmux quote an argument when it records a command.
const (
	doubleQuoted = " #';${}%"
	singleQuoted = " \""
)

// StartCommand renders argv the way tmux stores it in #{pane_start_command}.
func StartCommand(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		parts[i] = quoteArg(a)
	}
	return strings.Join(parts, " ")
}

// quoteArg follows tmux's args_escape: plain words pass through, words
// with shell or format characters are double-quoted with '"', '$' and '\'
// escaped, words whose only special character is '"' are single-quoted.
func quoteArg(s string) string {
	if s == "" {
		return "''"
	}
	var quote byte
	switch {
	case strings.ContainsAny(s, doubleQuoted):
		quote = '"'
	case strings.ContainsAny(s, singleQuoted):
		quote = '\''
	}
	if len(s) == 1 && s[0] != ' ' && (quote != 0 || s[0] == '~') {
		return `\` + s
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case quote == '"' && (r == '"' || r == '$'):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	escaped := b.String()

	tilde := ""
	if strings.HasPrefix(escaped, "~") {
		tilde = `\`
	}
	switch quote {
	case '"':
		return `"` + tilde + escaped + `"`
	case '\'':
		return "'" + escaped + "'"
	default:
		return tilde + escaped
	}
}
