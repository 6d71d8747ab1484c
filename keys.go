package cachefetch

import (
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// keyTemplate is one compiled token of the configured key template.
type keyTemplate struct {
	raw  string
	tmpl *fasttemplate.Template
}

// compileKeyTemplates splits the raw template into tokens and compiles each.
// Splitting on "," happens only in attribute mode, BEFORE placeholder
// expansion, and each token is whitespace-trimmed. In body mode the whole
// template is a single key.
func compileKeyTemplates(raw string, attrMode bool) ([]keyTemplate, error) {
	tokens := []string{raw}
	if attrMode {
		tokens = strings.Split(raw, ",")
		for i := range tokens {
			tokens[i] = strings.TrimSpace(tokens[i])
		}
	}
	out := make([]keyTemplate, 0, len(tokens))
	for _, tok := range tokens {
		t, err := fasttemplate.NewTemplate(tok, "${", "}")
		if err != nil {
			return nil, err
		}
		out = append(out, keyTemplate{raw: tok, tmpl: t})
	}
	return out, nil
}

// resolveKeys expands every token against the record's attributes and
// returns the resolved keys deduplicated in first-seen order. Any token
// expanding to the empty string fails the whole resolution with ErrEmptyKey;
// the caller must not issue cache calls in that case.
func resolveKeys(templates []keyTemplate, rec *Record) ([]string, error) {
	keys := make([]string, 0, len(templates))
	var seen map[string]struct{}
	if len(templates) > 1 {
		seen = make(map[string]struct{}, len(templates))
	}
	for _, kt := range templates {
		k := kt.tmpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
			// unknown attributes expand to ""
			return io.WriteString(w, rec.Attributes[strings.TrimSpace(tag)])
		})
		if k == "" {
			return nil, ErrEmptyKey
		}
		if seen != nil {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		keys = append(keys, k)
	}
	return keys, nil
}
