package filter

// Builder composes translated conditions and pre-built nodes into one
// predicate tree. Errors are deferred to Build so calls chain fluently.
//
//	node, err := filter.NewBuilder(schema).
//		Where(map[string]any{"status": "Done", "priority__gte": 5}).
//		Or(archived, overdue).
//		Build()
type Builder struct {
	schema Schema
	root   And
	err    error
}

// NewBuilder starts an empty builder validating against schema.
func NewBuilder(schema Schema) *Builder {
	return &Builder{schema: schema}
}

// Where translates conditions and appends them to the top-level And.
func (b *Builder) Where(conditions map[string]any) *Builder {
	if b.err != nil {
		return b
	}
	nodes, err := Translate(b.schema, conditions)
	if err != nil {
		b.err = err
		return b
	}
	b.root = append(b.root, nodes...)
	return b
}

// And appends already-built nodes to the top-level And.
func (b *Builder) And(nodes ...Node) *Builder {
	if b.err != nil {
		return b
	}
	b.root = append(b.root, nodes...)
	return b
}

// Or wraps the given nodes in an Or and appends it to the top-level And.
func (b *Builder) Or(nodes ...Node) *Builder {
	if b.err != nil {
		return b
	}
	b.root = append(b.root, Or(nodes))
	return b
}

// Build returns the composed tree, or the first error encountered. An
// empty builder yields an empty And, which callers should treat as "no
// filter".
func (b *Builder) Build() (And, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.root, nil
}
