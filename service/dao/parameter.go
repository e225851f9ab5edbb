package dao

// Parameter narrows List results, e.g. by run state
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a list parameter; multiple values act as alternatives
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
