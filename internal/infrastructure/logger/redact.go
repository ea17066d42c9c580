package logger

import (
	"encoding/json"
	"io"
	"strings"
)

// RedactedPlaceholder replaces secrets in log output and error messages.
const RedactedPlaceholder = "[REDACTED]"

// Redact replaces every occurrence of each secret in s, longest secret first
// so a secret that contains another is masked whole.
func Redact(s string, secrets ...string) string {
	for _, secret := range sortedByLength(secrets) {
		s = strings.ReplaceAll(s, secret, RedactedPlaceholder)
	}
	return s
}

// redactingWriter masks secrets in each zerolog write. zerolog emits one event per Write call,
// so a secret never spans two writes.
type redactingWriter struct {
	out      io.Writer
	replacer *strings.Replacer
}

func newRedactingWriter(out io.Writer, secrets []string) *redactingWriter {
	pairs := make([]string, 0, len(secrets)*4)
	for _, secret := range sortedByLength(secrets) {
		pairs = append(pairs, secret, RedactedPlaceholder)
		// JSON output escapes quotes and backslashes, so mask the escaped form too
		if escaped := jsonEscape(secret); escaped != secret {
			pairs = append(pairs, escaped, RedactedPlaceholder)
		}
	}
	return &redactingWriter{
		out:      out,
		replacer: strings.NewReplacer(pairs...),
	}
}

// Write implements io.Writer. It reports len(p) on success because callers
// account for the bytes they passed in, not the masked length.
func (w *redactingWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(w.out, w.replacer.Replace(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

func jsonEscape(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return s
	}
	return string(b[1 : len(b)-1])
}

func sortedByLength(secrets []string) []string {
	out := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			out = append(out, s)
		}
	}
	// insertion sort, the list has at most a handful of entries
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
