package migration

import (
	"fmt"
	"path"
	"strings"
)

// IgnoreClass separates silent skips from recorded ones. Silent ignores
// leave no audit trail; recorded ignores produce a WARN project activity.
type IgnoreClass int

// IgnoreClass values.
const (
	IgnoreSilent IgnoreClass = iota
	IgnoreRecorded
)

// Ignore explains why a committed file was not turned into a migration.
type Ignore struct {
	class  IgnoreClass
	reason string
}

// NewSilentIgnore creates a silent Ignore.
func NewSilentIgnore(reason string) Ignore {
	return Ignore{class: IgnoreSilent, reason: reason}
}

// NewRecordedIgnore creates a recorded Ignore.
func NewRecordedIgnore(reason string) Ignore {
	return Ignore{class: IgnoreRecorded, reason: reason}
}

// Class returns the ignore classification.
func (i Ignore) Class() IgnoreClass { return i.class }

// Silent reports whether the ignore leaves no audit trail.
func (i Ignore) Silent() bool { return i.class == IgnoreSilent }

// Reason returns the human-readable reason.
func (i Ignore) Reason() string { return i.reason }

// Classifier decides, per added file path, whether the file is a migration
// and extracts its Descriptor. Templates are compiled once per repository
// configuration and reused for every file in the push.
type Classifier struct {
	baseDirectory  string
	fileTemplate   Template
	schemaTemplate *Template
}

// NewClassifier compiles the repository's templates. schemaPathTemplate may
// be empty when the repository does not write generated schema dumps.
func NewClassifier(baseDirectory, filePathTemplate, schemaPathTemplate string) (Classifier, error) {
	fileTemplate, err := Compile(path.Join(baseDirectory, filePathTemplate))
	if err != nil {
		return Classifier{}, fmt.Errorf("file path template: %w", err)
	}

	c := Classifier{
		baseDirectory: baseDirectory,
		fileTemplate:  fileTemplate,
	}

	if schemaPathTemplate != "" {
		schemaTemplate, err := CompilePermissive(path.Join(baseDirectory, schemaPathTemplate))
		if err != nil {
			return Classifier{}, fmt.Errorf("schema path template: %w", err)
		}
		c.schemaTemplate = &schemaTemplate
	}

	return c, nil
}

// Classify inspects one added file path. On success it returns the parsed
// Descriptor and a nil Ignore; otherwise the Ignore says whether the skip
// is silent (outside the base directory, generated schema dump) or recorded
// (template mismatch, invalid placeholder values).
func (c Classifier) Classify(filePath string) (Descriptor, *Ignore) {
	if !strings.HasPrefix(filePath, c.baseDirectory) {
		ignore := NewSilentIgnore(fmt.Sprintf("file is not under base directory %q", c.baseDirectory))
		return Descriptor{}, &ignore
	}

	// Generated schema dumps are committed back by the service itself and
	// must never re-trigger a pipeline.
	if c.schemaTemplate != nil && c.schemaTemplate.Match(filePath) {
		ignore := NewSilentIgnore("file matches the generated schema dump template")
		return Descriptor{}, &ignore
	}

	values, ok := c.fileTemplate.Extract(filePath)
	if !ok {
		ignore := NewRecordedIgnore(fmt.Sprintf("file does not match file path template %q", c.fileTemplate.Raw()))
		return Descriptor{}, &ignore
	}

	descriptor, err := extractDescriptor(values)
	if err != nil {
		ignore := NewRecordedIgnore(err.Error())
		return Descriptor{}, &ignore
	}

	return descriptor, nil
}
