package style

// Variant selects which adaptive overrides apply when a style is
// resolved for output.
type Variant int

const (
	// VariantNone resolves to the base attributes only
	VariantNone Variant = iota
	// VariantLight applies the light overrides over the base
	VariantLight
	// VariantDark applies the dark overrides over the base
	VariantDark
)

func (v Variant) String() string {
	switch v {
	case VariantLight:
		return "light"
	case VariantDark:
		return "dark"
	default:
		return "none"
	}
}

// Definition is a single style entry in a theme: either concrete
// attributes with optional adaptive overrides, or an alias pointing at
// another style name.
type Definition struct {
	Base  Attributes
	Light *Attributes
	Dark  *Attributes

	// Alias, when non-empty, makes this definition a pure reference;
	// the attribute fields are ignored.
	Alias string
}

// IsAlias reports whether this definition points at another style
func (d Definition) IsAlias() bool {
	return d.Alias != ""
}

// ForVariant returns the concrete attributes for one adaptive variant:
// base merged with the matching override, right-wins per attribute.
func (d Definition) ForVariant(v Variant) Attributes {
	switch v {
	case VariantLight:
		if d.Light != nil {
			return d.Base.Merge(*d.Light)
		}
	case VariantDark:
		if d.Dark != nil {
			return d.Base.Merge(*d.Dark)
		}
	}
	return d.Base
}

// Concrete builds a concrete definition
func Concrete(base Attributes) Definition {
	return Definition{Base: base}
}

// AliasOf builds an alias definition
func AliasOf(target string) Definition {
	return Definition{Alias: target}
}
