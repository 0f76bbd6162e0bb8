package querybuilder

import (
	"fmt"
	"reflect"
)

// InsertModel builds an INSERT from a struct's `db` tags. The optional suffix
// is appended verbatim (ON CONFLICT arms and the like).
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	columns, values, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}

	builder := InsertInto(table).Columns(columns...).Values(values...)
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}
	return builder.ToSQL()
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("insert model must not be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("insert model must be a struct, got %s", value.Kind())
	}

	structType := value.Type()
	columns := make([]string, 0, structType.NumField())
	values := make([]any, 0, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, tag)
		values = append(values, value.Field(i).Interface())
	}

	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("insert model has no db-tagged fields")
	}
	return columns, values, nil
}
