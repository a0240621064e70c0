package filter

// Node is one node of the translated predicate tree. The set of
// implementations is closed: Compare, And, Or.
type Node interface {
	// Wire renders the node in the API's filter payload shape.
	Wire() map[string]any

	node()
}

// Compare is a leaf predicate: one property, one operator, one value.
// Construct it through NewCompare or Translate so the (operator, type)
// pair is validated and the wire shape is known to exist.
type Compare struct {
	Property string
	Op       Operator
	Value    any

	typ PropertyType
}

func (Compare) node() {}

// NewCompare validates op against the declared type of property in schema
// and returns the leaf node.
func NewCompare(schema Schema, property string, op Operator, value any) (Compare, error) {
	typ, ok := schema[property]
	if !ok {
		return Compare{}, &TranslationError{Field: property, Reason: "not present in schema"}
	}
	if _, ok := wireOps[typ][op]; !ok {
		return Compare{}, &TranslationError{
			Field: property, Op: op, Type: typ,
			Reason: "not supported for this property type",
		}
	}
	return Compare{Property: property, Op: op, Value: value, typ: typ}, nil
}

// Type returns the property type the comparison was validated against.
func (c Compare) Type() PropertyType {
	return c.typ
}

func (c Compare) Wire() map[string]any {
	name := wireOps[c.typ][c.Op]
	var val any = c.Value
	// Emptiness checks carry a literal true instead of the caller value.
	if c.Op == OpIsNull || c.Op == OpIsNotNull {
		val = true
	}
	return map[string]any{
		"property":    c.Property,
		string(c.typ): map[string]any{name: val},
	}
}

// And combines child predicates conjunctively.
type And []Node

func (And) node() {}

func (a And) Wire() map[string]any {
	return map[string]any{"and": wireList(a)}
}

// Or combines child predicates disjunctively.
type Or []Node

func (Or) node() {}

func (o Or) Wire() map[string]any {
	return map[string]any{"or": wireList(o)}
}

func wireList(nodes []Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Wire())
	}
	return out
}

// wireOps maps each (property type, operator) pair to the comparison name
// used inside the wire filter object. Absence means the pair is invalid
// and translation must fail.
var wireOps = map[PropertyType]map[Operator]string{
	TypeTitle:    textWireOps,
	TypeRichText: textWireOps,
	TypeURL:      textWireOps,
	TypeEmail:    textWireOps,
	TypeNumber: {
		OpEq:        "equals",
		OpNe:        "does_not_equal",
		OpGt:        "greater_than",
		OpGte:       "greater_than_or_equal_to",
		OpLt:        "less_than",
		OpLte:       "less_than_or_equal_to",
		OpIsNull:    "is_empty",
		OpIsNotNull: "is_not_empty",
	},
	TypeCheckbox: {
		OpEq: "equals",
		OpNe: "does_not_equal",
	},
	TypeSelect: selectWireOps,
	TypeStatus: selectWireOps,
	TypeMultiSelect: {
		OpContains:  "contains",
		OpNe:        "does_not_contain",
		OpIsNull:    "is_empty",
		OpIsNotNull: "is_not_empty",
	},
	TypePeople: {
		OpContains:  "contains",
		OpNe:        "does_not_contain",
		OpIsNull:    "is_empty",
		OpIsNotNull: "is_not_empty",
	},
	TypeDate: {
		OpEq:        "equals",
		OpBefore:    "before",
		OpAfter:     "after",
		OpGt:        "after",
		OpLt:        "before",
		OpGte:       "on_or_after",
		OpLte:       "on_or_before",
		OpIsNull:    "is_empty",
		OpIsNotNull: "is_not_empty",
	},
}

var textWireOps = map[Operator]string{
	OpEq:         "equals",
	OpNe:         "does_not_equal",
	OpContains:   "contains",
	OpStartsWith: "starts_with",
	OpEndsWith:   "ends_with",
	OpIsNull:     "is_empty",
	OpIsNotNull:  "is_not_empty",
}

var selectWireOps = map[Operator]string{
	OpEq:        "equals",
	OpNe:        "does_not_equal",
	OpIsNull:    "is_empty",
	OpIsNotNull: "is_not_empty",
}
