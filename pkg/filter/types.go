// Package filter translates ergonomic field__operator conditions into the
// nested predicate tree the workspace API expects in its query payloads.
// Translation is eager and typed: every (operator, property type) pair is
// validated against the schema before any network call happens.
package filter

import "fmt"

// Operator is the suffix operator recognized in condition keys, e.g. the
// "gte" in "priority__gte".
type Operator string

const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "starts_with"
	OpEndsWith   Operator = "ends_with"
	OpIsNull     Operator = "is_null"
	OpIsNotNull  Operator = "is_not_null"
	OpBefore     Operator = "before"
	OpAfter      Operator = "after"
	OpIn         Operator = "in"
)

// operators that may appear as a "__suffix" on a condition key.
var suffixOperators = map[Operator]struct{}{
	OpEq: {}, OpNe: {}, OpGt: {}, OpGte: {}, OpLt: {}, OpLte: {},
	OpContains: {}, OpStartsWith: {}, OpEndsWith: {},
	OpIsNull: {}, OpIsNotNull: {}, OpBefore: {}, OpAfter: {}, OpIn: {},
}

// PropertyType is the declared type of a property in the containing
// entity's schema.
type PropertyType string

const (
	TypeTitle       PropertyType = "title"
	TypeRichText    PropertyType = "rich_text"
	TypeNumber      PropertyType = "number"
	TypeCheckbox    PropertyType = "checkbox"
	TypeSelect      PropertyType = "select"
	TypeMultiSelect PropertyType = "multi_select"
	TypeStatus      PropertyType = "status"
	TypeDate        PropertyType = "date"
	TypePeople      PropertyType = "people"
	TypeURL         PropertyType = "url"
	TypeEmail       PropertyType = "email"
)

// Schema maps property names to their declared types. It is the most
// recently observed schema of the containing database; a property retyped
// mid-session is always validated against the latest read.
type Schema map[string]PropertyType

// TranslationError reports an unknown field or an operator applied to a
// property type that does not support it. It is always a caller bug and is
// raised before any I/O.
type TranslationError struct {
	Field  string
	Op     Operator
	Type   PropertyType
	Reason string
}

func (e *TranslationError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("filter: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("filter: field %q (%s): operator %q: %s", e.Field, e.Type, e.Op, e.Reason)
}
