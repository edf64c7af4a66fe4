package pgsql_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Optional request fields are *string on the models and bind as SQL NULL when
// omitted, so their columns must stay nullable. A NOT NULL here would turn the
// minimal valid request into a constraint violation.
func TestSchemaOptionalColumnsAreNullable(t *testing.T) {
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "000001_init.up.sql"))
	require.NoError(t, err)

	optional := map[string][]string{
		"health_conditions": {"notes"},
		"pantry_items":      {"category"},
		"saved_recipes":     {"recipe_text", "notes"},
		"shopping_items":    {"quantity", "category", "source_recipe_id"},
		"planned_meals":     {"recipe_id", "notes"},
		"shopping_lists":    {"completed_at"},
	}

	for table, columns := range optional {
		body := tableBody(t, string(schema), table)
		for _, column := range columns {
			line := columnLine(t, body, column)
			assert.NotContainsf(t, line, "NOT NULL", "%s.%s must be nullable", table, column)
		}
	}
}

func tableBody(t *testing.T, schema, table string) string {
	t.Helper()
	marker := "CREATE TABLE " + table + " ("
	start := strings.Index(schema, marker)
	require.GreaterOrEqualf(t, start, 0, "table %s not found in schema", table)
	rest := schema[start+len(marker):]
	end := strings.Index(rest, ");")
	require.GreaterOrEqualf(t, end, 0, "table %s is not terminated", table)
	return rest[:end]
}

func columnLine(t *testing.T, body, column string) string {
	t.Helper()
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), column+" ") {
			return line
		}
	}
	t.Fatalf("column %s not found", column)
	return ""
}
