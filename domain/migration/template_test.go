package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Run("extracts named placeholders", func(t *testing.T) {
		tmpl, err := Compile("{{ENV_NAME}}/{{DB_NAME}}__{{VERSION}}__{{TYPE}}__{{DESCRIPTION}}.sql")
		require.NoError(t, err)

		values, ok := tmpl.Extract("prod/orders__20260823__migrate__add_note_column.sql")
		require.True(t, ok)
		assert.Equal(t, "prod", values[PlaceholderEnvName])
		assert.Equal(t, "orders", values[PlaceholderDBName])
		assert.Equal(t, "20260823", values[PlaceholderVersion])
		assert.Equal(t, "migrate", values[PlaceholderType])
		assert.Equal(t, "add_note_column", values[PlaceholderDescription])
	})

	t.Run("anchored at both ends", func(t *testing.T) {
		tmpl, err := Compile("{{DB_NAME}}__{{VERSION}}.sql")
		require.NoError(t, err)

		assert.False(t, tmpl.Match("prefix/orders__1.sql"))
		assert.False(t, tmpl.Match("orders__1.sql.bak"))
		assert.True(t, tmpl.Match("orders__1.sql"))
	})

	t.Run("name segments do not span path separators", func(t *testing.T) {
		tmpl, err := Compile("{{DB_NAME}}/{{VERSION}}.sql")
		require.NoError(t, err)

		assert.False(t, tmpl.Match("orders/extra/1.sql"))
	})

	t.Run("type is a closed enumeration", func(t *testing.T) {
		tmpl, err := Compile("{{DB_NAME}}__{{VERSION}}__{{TYPE}}.sql")
		require.NoError(t, err)

		assert.True(t, tmpl.Match("orders__1__baseline.sql"))
		assert.True(t, tmpl.Match("orders__1__migrate.sql"))
		assert.False(t, tmpl.Match("orders__1__rollback.sql"))
	})

	t.Run("literal regex metacharacters are quoted", func(t *testing.T) {
		tmpl, err := Compile("v(1)/{{DB_NAME}}.sql")
		require.NoError(t, err)

		assert.True(t, tmpl.Match("v(1)/orders.sql"))
		assert.False(t, tmpl.Match("v1/orders.sql"))
	})

	t.Run("unknown placeholder fails", func(t *testing.T) {
		_, err := Compile("{{DB_NAME}}__{{BRANCH}}.sql")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BRANCH")
	})
}

func TestCompilePermissive(t *testing.T) {
	tmpl, err := CompilePermissive("{{ENV_NAME}}/{{DB_NAME}}__LATEST.sql")
	require.NoError(t, err)

	// Permissive captures may span separators.
	assert.True(t, tmpl.Match("prod/eu/orders__LATEST.sql"))
	assert.False(t, tmpl.Match("prod/orders__LATEST.sql.bak"))
}
