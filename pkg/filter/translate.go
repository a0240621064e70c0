package filter

import (
	"reflect"
	"sort"
	"strings"
)

// Translate converts a condition map into the implicit top-level And.
// Keys are either a plain property name (operator eq) or
// "property__operator". Condition keys are processed in lexicographic
// order so translation is deterministic.
//
// The "in" operator expands into an Or of per-value comparisons, because
// the wire format has no native membership comparison.
func Translate(schema Schema, conditions map[string]any) (And, error) {
	keys := make([]string, 0, len(conditions))
	for k := range conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := make(And, 0, len(keys))
	for _, key := range keys {
		field, op := splitKey(key)
		node, err := translateOne(schema, field, op, conditions[key])
		if err != nil {
			return nil, err
		}
		root = append(root, node)
	}
	return root, nil
}

// splitKey splits a condition key on the last "__". A suffix that is not a
// recognized operator is treated as part of the field name with eq.
func splitKey(key string) (field string, op Operator) {
	idx := strings.LastIndex(key, "__")
	if idx < 0 {
		return key, OpEq
	}
	suffix := Operator(key[idx+2:])
	if _, ok := suffixOperators[suffix]; !ok {
		return key, OpEq
	}
	return key[:idx], suffix
}

func translateOne(schema Schema, field string, op Operator, value any) (Node, error) {
	if op == OpIn {
		return expandIn(schema, field, value)
	}
	node, err := NewCompare(schema, field, op, value)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func expandIn(schema Schema, field string, value any) (Node, error) {
	typ, ok := schema[field]
	if !ok {
		return nil, &TranslationError{Field: field, Reason: "not present in schema"}
	}

	// Per-value operator: membership on list-valued properties means
	// "contains one of", elsewhere "equals one of".
	each := OpEq
	switch typ {
	case TypeMultiSelect, TypePeople:
		each = OpContains
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, &TranslationError{
			Field: field, Op: OpIn, Type: typ,
			Reason: "value must be a slice",
		}
	}

	out := make(Or, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		node, err := NewCompare(schema, field, each, rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}
