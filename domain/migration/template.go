// Package migration provides migration-file classification: compiled path
// templates, the descriptor extracted from a committed file path, and the
// classifier that separates real migrations from ignorable artifacts.
package migration

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder is a named slot in a path template.
type Placeholder string

// Placeholders understood by path templates.
const (
	PlaceholderEnvName     Placeholder = "ENV_NAME"
	PlaceholderDBName      Placeholder = "DB_NAME"
	PlaceholderVersion     Placeholder = "VERSION"
	PlaceholderType        Placeholder = "TYPE"
	PlaceholderDescription Placeholder = "DESCRIPTION"
)

// Capture classes per placeholder. Name-like placeholders exclude the path
// separator so a single segment can never swallow a neighbouring one;
// TYPE is a closed enumeration.
var placeholderPatterns = map[Placeholder]string{
	PlaceholderEnvName:     `[a-zA-Z0-9_+\-=#?!$. ]+`,
	PlaceholderDBName:      `[a-zA-Z0-9_+\-=#?!$. ]+`,
	PlaceholderVersion:     `[a-zA-Z0-9.]+`,
	PlaceholderType:        `baseline|migrate`,
	PlaceholderDescription: `[a-zA-Z0-9_+\-=#?!$. ]+`,
}

// permissivePattern is used for templates that only locate files (schema
// dumps) rather than extract fields, so it may span path separators.
const permissivePattern = `[a-zA-Z0-9+\-=/_#?!$. ]+`

// Template is a compiled path template. It is built once per repository
// configuration and reused across every file in a push.
type Template struct {
	raw string
	re  *regexp.Regexp
}

// Compile builds a Template whose placeholders become typed named capture
// groups. Literal segments are quoted, and the whole pattern is anchored.
func Compile(raw string) (Template, error) {
	return compile(raw, placeholderPatterns)
}

// CompilePermissive builds a Template whose placeholders all use the
// permissive capture class. Used for the generated schema-dump template,
// which is only ever matched, never extracted from.
func CompilePermissive(raw string) (Template, error) {
	patterns := map[Placeholder]string{
		PlaceholderEnvName: permissivePattern,
		PlaceholderDBName:  permissivePattern,
	}
	return compile(raw, patterns)
}

var placeholderRe = regexp.MustCompile(`\{\{([A-Z_]+)\}\}`)

func compile(raw string, patterns map[Placeholder]string) (Template, error) {
	var sb strings.Builder
	sb.WriteString("^")

	last := 0
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(raw, -1) {
		sb.WriteString(regexp.QuoteMeta(raw[last:loc[0]]))
		name := Placeholder(raw[loc[2]:loc[3]])
		pattern, ok := patterns[name]
		if !ok {
			return Template{}, fmt.Errorf("unknown placeholder {{%s}} in template %q", name, raw)
		}
		fmt.Fprintf(&sb, "(?P<%s>%s)", name, pattern)
		last = loc[1]
	}
	sb.WriteString(regexp.QuoteMeta(raw[last:]))
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return Template{}, fmt.Errorf("compile path template %q: %w", raw, err)
	}
	return Template{raw: raw, re: re}, nil
}

// Raw returns the template string the Template was compiled from.
func (t Template) Raw() string { return t.raw }

// Match reports whether path matches the template.
func (t Template) Match(path string) bool {
	return t.re.MatchString(path)
}

// Extract returns the placeholder values captured from path, or false if
// path does not match the template.
func (t Template) Extract(path string) (map[Placeholder]string, bool) {
	match := t.re.FindStringSubmatch(path)
	if match == nil {
		return nil, false
	}

	values := map[Placeholder]string{}
	for i, name := range t.re.SubexpNames() {
		if name == "" || i >= len(match) {
			continue
		}
		values[Placeholder(name)] = match[i]
	}
	return values, true
}
