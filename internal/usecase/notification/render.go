package notification

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	ifOpen  = "{{#if"
	ifClose = "{{/if}}"
)

// Render evaluates {{#if var}}...{{/if}} blocks and substitutes {{var}}
// placeholders from data. Unknown placeholders render empty. With escape set,
// substituted values are HTML-escaped.
func Render(tpl string, data map[string]any, escape bool) string {
	out, err := fasttemplate.ExecuteFuncStringWithErr(evalConditionals(tpl, data), "{{", "}}",
		func(w io.Writer, tag string) (int, error) {
			v := valueString(data[strings.TrimSpace(tag)])
			if escape {
				v = html.EscapeString(v)
			}
			return w.Write([]byte(v))
		})
	if err != nil {
		// unbalanced braces: leave the text as written
		return tpl
	}
	return out
}

// evalConditionals resolves blocks innermost first so nesting works.
func evalConditionals(tpl string, data map[string]any) string {
	for {
		start := strings.LastIndex(tpl, ifOpen)
		if start < 0 {
			return tpl
		}
		headEnd := strings.Index(tpl[start:], "}}")
		if headEnd < 0 {
			return tpl
		}
		headEnd += start
		end := strings.Index(tpl[headEnd:], ifClose)
		if end < 0 {
			return tpl
		}
		end += headEnd

		name := strings.TrimSpace(tpl[start+len(ifOpen) : headEnd])
		body := ""
		if truthy(data[name]) {
			body = tpl[headEnd+2 : end]
		}
		tpl = tpl[:start] + body + tpl[end+len(ifClose):]
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case *string:
		return x != nil && *x != ""
	case *float64:
		return x != nil && *x != 0
	}
	return true
}

func valueString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case *float64:
		if x == nil {
			return ""
		}
		return fmt.Sprint(*x)
	}
	return fmt.Sprint(v)
}

var placeholderRe = regexp.MustCompile(`\{\{\s*(?:#if\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Variables lists the distinct placeholder names used in texts, sorted.
func Variables(texts ...string) []string {
	seen := map[string]bool{}
	for _, t := range texts {
		for _, m := range placeholderRe.FindAllStringSubmatch(t, -1) {
			seen[m[1]] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
