package querybuilder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx/reflectx"
)

// modelMapper reads the same db tags sqlx uses when scanning rows.
var modelMapper = reflectx.NewMapperFunc("db", strings.ToLower)

// InsertModel builds a single-row INSERT from the top-level db-tagged fields
// of model, in declaration order, followed by suffix.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.Indirect(reflect.ValueOf(model))
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert into %s: model must be a struct, got %T", table, model)
	}

	fields := modelMapper.TypeMap(value.Type()).Index
	cols := make([]string, 0, len(fields))
	vals := make([]any, 0, len(fields))
	for _, field := range fields {
		if len(field.Index) != 1 || field.Embedded {
			continue
		}
		cols = append(cols, field.Name)
		vals = append(vals, value.FieldByIndex(field.Index).Interface())
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}
