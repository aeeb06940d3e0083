package migration

import (
	"fmt"
	"strings"
	"unicode"
)

// Type marks whether a file establishes a baseline or migrates a schema.
type Type string

// Type values.
const (
	TypeBaseline Type = "BASELINE"
	TypeMigrate  Type = "MIGRATE"
)

// Descriptor is the (database, environment, version, type, description)
// tuple extracted from a committed file path. Ephemeral; produced once per
// added file and discarded when the file's processing ends.
type Descriptor struct {
	database    string
	environment string
	version     string
	typ         Type
	description string
}

// Database returns the target database name.
func (d Descriptor) Database() string { return d.database }

// Environment returns the target environment name, or empty when the
// template carries no environment segment.
func (d Descriptor) Environment() string { return d.environment }

// Version returns the migration version marker.
func (d Descriptor) Version() string { return d.version }

// Type returns the migration type.
func (d Descriptor) Type() Type { return d.typ }

// Description returns the human-readable migration description.
func (d Descriptor) Description() string { return d.description }

// extractDescriptor interprets the captured placeholder values of a matched
// file path. DB_NAME and VERSION are required; ENV_NAME, TYPE, and
// DESCRIPTION are optional.
func extractDescriptor(values map[Placeholder]string) (Descriptor, error) {
	d := Descriptor{
		database:    values[PlaceholderDBName],
		environment: values[PlaceholderEnvName],
		version:     values[PlaceholderVersion],
	}

	if d.database == "" {
		return Descriptor{}, fmt.Errorf("missing %s placeholder value", PlaceholderDBName)
	}
	if d.version == "" {
		return Descriptor{}, fmt.Errorf("missing %s placeholder value", PlaceholderVersion)
	}

	switch values[PlaceholderType] {
	case "baseline":
		d.typ = TypeBaseline
	default:
		d.typ = TypeMigrate
	}

	d.description = describeMigration(values[PlaceholderDescription], d.database, d.typ)
	return d, nil
}

// describeMigration turns the DESCRIPTION segment into a sentence, falling
// back to a generated one when the template has no description slot.
func describeMigration(raw, database string, typ Type) string {
	if raw == "" {
		if typ == TypeBaseline {
			return fmt.Sprintf("Establish %q baseline", database)
		}
		return fmt.Sprintf("Create %q schema migration", database)
	}

	description := strings.ReplaceAll(raw, "_", " ")
	runes := []rune(description)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
