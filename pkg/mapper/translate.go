package mapper

import "github.com/aretw0/graft/pkg/types"

// Translate returns the foreign equivalent of an argument type.
// Mappable types answer for themselves, primitives are shared by both domains,
// anything else fails with an UnsupportedTypeError naming path.
func Translate(t types.Type, path string) (types.Type, error) {
	if m, ok := t.(types.Mappable); ok {
		if mapped, ok := m.Mapped(); ok {
			return mapped, nil
		}
	}
	if types.IsPrimitive(t) {
		return t, nil
	}
	return nil, &UnsupportedTypeError{Path: path, Type: t.Name()}
}
