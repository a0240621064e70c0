package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	"title":    TypeTitle,
	"status":   TypeSelect,
	"stage":    TypeStatus,
	"priority": TypeNumber,
	"done":     TypeCheckbox,
	"tags":     TypeMultiSelect,
	"owner":    TypePeople,
	"due":      TypeDate,
	"link":     TypeURL,
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key       string
		wantField string
		wantOp    Operator
	}{
		{key: "status", wantField: "status", wantOp: OpEq},
		{key: "priority__gte", wantField: "priority", wantOp: OpGte},
		{key: "title__starts_with", wantField: "title", wantOp: OpStartsWith},
		{key: "due__before", wantField: "due", wantOp: OpBefore},
		// An unrecognized suffix folds back into the field name.
		{key: "custom__field", wantField: "custom__field", wantOp: OpEq},
		{key: "a__b__gte", wantField: "a__b", wantOp: OpGte},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			field, op := splitKey(tt.key)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOp, op)
		})
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name       string
		conditions map[string]any
		wantWire   map[string]any
	}{
		{
			name: "select eq and number gte",
			conditions: map[string]any{
				"status":        "Done",
				"priority__gte": 5,
			},
			// Condition keys translate in lexicographic order.
			wantWire: map[string]any{
				"and": []any{
					map[string]any{"property": "priority", "number": map[string]any{"greater_than_or_equal_to": 5}},
					map[string]any{"property": "status", "select": map[string]any{"equals": "Done"}},
				},
			},
		},
		{
			name:       "text contains",
			conditions: map[string]any{"title__contains": "weekly"},
			wantWire: map[string]any{
				"and": []any{
					map[string]any{"property": "title", "title": map[string]any{"contains": "weekly"}},
				},
			},
		},
		{
			name:       "checkbox default eq",
			conditions: map[string]any{"done": true},
			wantWire: map[string]any{
				"and": []any{
					map[string]any{"property": "done", "checkbox": map[string]any{"equals": true}},
				},
			},
		},
		{
			name:       "date window",
			conditions: map[string]any{"due__after": "2026-01-01", "due__lte": "2026-02-01"},
			wantWire: map[string]any{
				"and": []any{
					map[string]any{"property": "due", "date": map[string]any{"after": "2026-01-01"}},
					map[string]any{"property": "due", "date": map[string]any{"on_or_before": "2026-02-01"}},
				},
			},
		},
		{
			name:       "is_null carries literal true",
			conditions: map[string]any{"status__is_null": nil},
			wantWire: map[string]any{
				"and": []any{
					map[string]any{"property": "status", "select": map[string]any{"is_empty": true}},
				},
			},
		},
		{
			name:       "in expands to or of equals",
			conditions: map[string]any{"status__in": []any{"Done", "Doing"}},
			wantWire: map[string]any{
				"and": []any{
					map[string]any{"or": []any{
						map[string]any{"property": "status", "select": map[string]any{"equals": "Done"}},
						map[string]any{"property": "status", "select": map[string]any{"equals": "Doing"}},
					}},
				},
			},
		},
		{
			name:       "in on multi_select expands to or of contains",
			conditions: map[string]any{"tags__in": []string{"ops", "infra"}},
			wantWire: map[string]any{
				"and": []any{
					map[string]any{"or": []any{
						map[string]any{"property": "tags", "multi_select": map[string]any{"contains": "ops"}},
						map[string]any{"property": "tags", "multi_select": map[string]any{"contains": "infra"}},
					}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Translate(testSchema, tt.conditions)
			require.NoError(t, err)
			assert.Equal(t, tt.wantWire, node.Wire())
		})
	}
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name       string
		conditions map[string]any
		wantField  string
		wantOp     Operator
	}{
		{
			name:       "unknown field",
			conditions: map[string]any{"missing": 1},
			wantField:  "missing",
		},
		{
			name:       "contains against checkbox",
			conditions: map[string]any{"done__contains": true},
			wantField:  "done",
			wantOp:     OpContains,
		},
		{
			name:       "ordering against select",
			conditions: map[string]any{"status__gt": "Done"},
			wantField:  "status",
			wantOp:     OpGt,
		},
		{
			name:       "before against number",
			conditions: map[string]any{"priority__before": 3},
			wantField:  "priority",
			wantOp:     OpBefore,
		},
		{
			name:       "in with non-slice value",
			conditions: map[string]any{"status__in": "Done"},
			wantField:  "status",
			wantOp:     OpIn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(testSchema, tt.conditions)
			require.Error(t, err)

			var terr *TranslationError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, tt.wantField, terr.Field)
			if tt.wantOp != "" {
				assert.Equal(t, tt.wantOp, terr.Op)
			}
		})
	}
}

// A property retyped between schema reads is validated against the most
// recently observed schema only.
func TestTranslateRetypedProperty(t *testing.T) {
	old := Schema{"status": TypeSelect}
	node, err := Translate(old, map[string]any{"status": "Done"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"and": []any{
			map[string]any{"property": "status", "select": map[string]any{"equals": "Done"}},
		},
	}, node.Wire())

	// After the retype the same condition is judged against the new
	// type, and eq is not valid for multi_select.
	retyped := Schema{"status": TypeMultiSelect}
	_, err = Translate(retyped, map[string]any{"status": "Done"})
	var terr *TranslationError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, TypeMultiSelect, terr.Type)
}

func TestBuilder(t *testing.T) {
	overdue, err := NewCompare(testSchema, "due", OpBefore, "2026-01-01")
	require.NoError(t, err)
	unowned, err := NewCompare(testSchema, "owner", OpIsNull, nil)
	require.NoError(t, err)

	node, err := NewBuilder(testSchema).
		Where(map[string]any{"status": "Open"}).
		Or(overdue, unowned).
		Build()
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"and": []any{
			map[string]any{"property": "status", "select": map[string]any{"equals": "Open"}},
			map[string]any{"or": []any{
				map[string]any{"property": "due", "date": map[string]any{"before": "2026-01-01"}},
				map[string]any{"property": "owner", "people": map[string]any{"is_empty": true}},
			}},
		},
	}, node.Wire())
}

func TestBuilderPropagatesFirstError(t *testing.T) {
	_, err := NewBuilder(testSchema).
		Where(map[string]any{"done__contains": "x"}).
		Where(map[string]any{"status": "Open"}).
		Build()
	require.Error(t, err)
	var terr *TranslationError
	assert.True(t, errors.As(err, &terr))
}
