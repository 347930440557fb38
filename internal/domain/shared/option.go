package shared

// Option is a selectable value with its pt-BR label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LabelOf returns the label for value, or value itself when unknown
func LabelOf(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// HasValue reports whether value is one of options
func HasValue(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
