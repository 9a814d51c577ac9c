package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	keySeparators = regexp.MustCompile(`[^a-z0-9]+`)
	// credentialLine matches IRC lines that carry a secret in their text,
	// e.g. "PASS hunter2" or "/msg NickServ IDENTIFY hunter2".
	credentialLine = regexp.MustCompile(`(?i)^\s*(/?pass\s|/?authenticate\s|/?oper\s|(/msg\s+)?nickserv\s+(identify|register|ghost)\s)`)
)

// redactor hides secrets in flattened key/value log pairs.
type redactor struct {
	words map[string]struct{}
}

func newRedactor() *redactor {
	r := &redactor{words: map[string]struct{}{}}
	for _, w := range []string{"secret", "password", "pass", "token", "key", "auth", "credential", "sasl", "nickserv"} {
		r.words[w] = struct{}{}
	}
	return r
}

// redact returns a copy of pairs with sensitive values replaced. A value
// is sensitive when one segment of its key is a sensitive word, or when it
// is chat text that sends a credential. A trailing key without a value is
// kept as is.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := append([]any(nil), pairs...)
	for i := 1; i < len(out); i += 2 {
		key, _ := out[i-1].(string)
		if r.sensitiveKey(key) || sendsCredential(out[i]) {
			out[i] = redacted
		}
	}
	return out
}

func (r *redactor) sensitiveKey(key string) bool {
	for _, part := range keySeparators.Split(strings.ToLower(key), -1) {
		if _, ok := r.words[part]; ok {
			return true
		}
	}
	return false
}

func sendsCredential(v any) bool {
	s, ok := v.(string)
	return ok && credentialLine.MatchString(s)
}
