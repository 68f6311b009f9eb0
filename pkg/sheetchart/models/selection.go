package models

// Selection is the committed (x column, y column, chart kind) tuple.
type Selection struct {
	// X is the column providing labels.
	X string `json:"x" yaml:"x"`
	// Y is the column providing values.
	Y string `json:"y" yaml:"y"`
	// Kind is the chart kind.
	Kind ChartKind `json:"kind" yaml:"kind"`
}

// Overlay holds transient hover values. Empty fields are unset.
type Overlay struct {
	X    string    `json:"x,omitempty" yaml:"x,omitempty"`
	Y    string    `json:"y,omitempty" yaml:"y,omitempty"`
	Kind ChartKind `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// IsZero reports whether no overlay field is set.
func (o Overlay) IsZero() bool {
	return o == Overlay{}
}

// Apply returns sel with every set overlay field substituted.
func (o Overlay) Apply(sel Selection) Selection {
	if o.X != "" {
		sel.X = o.X
	}
	if o.Y != "" {
		sel.Y = o.Y
	}
	if o.Kind != "" {
		sel.Kind = o.Kind
	}
	return sel
}
