package param

// Descriptor is the schema entry for one port.
type Descriptor struct {
	Name        string
	Description string
	Type        Type
}

// NewDescriptor is a shorthand used by generated schema code.
func NewDescriptor(name, description string, t Type) Descriptor {
	return Descriptor{Name: name, Description: description, Type: t}
}
