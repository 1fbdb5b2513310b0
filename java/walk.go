package java

// WalkTypes calls fn for every type reference declared directly on c, in
// declaration order, including type arguments and wildcard bounds nested
// inside them. Nested declarations are not visited.
func (c *Class) WalkTypes(fn func(*Type)) {
	c.WalkMemberTypes(fn)
	for i := range c.Methods {
		c.Methods[i].WalkTypes(fn)
	}
}

// WalkMemberTypes is WalkTypes without the method signatures.
func (c *Class) WalkMemberTypes(fn func(*Type)) {
	for i := range c.Generics {
		walkTypes(c.Generics[i].Bounds, fn)
	}
	walkTypes(c.Extends, fn)
	walkTypes(c.Implements, fn)
	walkTypes(c.Permits, fn)
	for i := range c.Fields {
		WalkType(&c.Fields[i].Type, fn)
	}
}

func (m *Method) WalkTypes(fn func(*Type)) {
	for i := range m.Generics {
		walkTypes(m.Generics[i].Bounds, fn)
	}
	for i := range m.Parameters {
		WalkType(&m.Parameters[i].Type, fn)
	}
	walkTypes(m.Throws, fn)
	if m.ReturnType != nil {
		WalkType(m.ReturnType, fn)
	}
}

func walkTypes(types []Type, fn func(*Type)) {
	for i := range types {
		WalkType(&types[i], fn)
	}
}

// WalkType calls fn for t and then for every type nested in its arguments.
func WalkType(t *Type, fn func(*Type)) {
	fn(t)
	if t.Object == nil || t.Object.Generics == nil {
		return
	}
	for i := range t.Object.Generics.Arguments {
		arg := &t.Object.Generics.Arguments[i]
		if arg.Type != nil {
			WalkType(arg.Type, fn)
		}
		if arg.Wildcard != nil {
			walkTypes(arg.Wildcard.Types, fn)
		}
	}
}
