// Package jsonschema reflects Go config structs into the JSON schema
// served by the spec command.
package jsonschema

import (
	"fmt"
	"reflect"
	"strings"
)

// Reflect builds a JSON schema for a config struct from its tags:
// `json` for the property name, `validate:"required"` for required
// fields, plus optional `default`, `desc` and `secret` tags.
func Reflect(config any) (map[string]any, error) {
	typ := reflect.TypeOf(config)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("config must be a struct, got %v", typ)
	}

	properties := map[string]any{}
	required := []string{}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		property, err := fieldSchema(field)
		if err != nil {
			return nil, err
		}
		properties[name] = property

		if strings.Contains(field.Tag.Get("validate"), "required") {
			required = append(required, name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema, nil
}

func fieldSchema(field reflect.StructField) (map[string]any, error) {
	jsonType, err := typeOf(field.Type)
	if err != nil {
		return nil, fmt.Errorf("field %s: %s", field.Name, err)
	}

	property := map[string]any{"type": jsonType}
	if desc := field.Tag.Get("desc"); desc != "" {
		property["description"] = desc
	}
	if def := field.Tag.Get("default"); def != "" {
		property["default"] = def
	}
	if field.Tag.Get("secret") == "true" {
		property["airbyte_secret"] = true
	}
	return property, nil
}

func typeOf(typ reflect.Type) (string, error) {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	switch typ.Kind() {
	case reflect.String:
		return "string", nil
	case reflect.Bool:
		return "boolean", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer", nil
	case reflect.Float32, reflect.Float64:
		return "number", nil
	case reflect.Map, reflect.Struct:
		return "object", nil
	case reflect.Slice, reflect.Array:
		return "array", nil
	default:
		return "", fmt.Errorf("unsupported kind %s", typ.Kind())
	}
}
