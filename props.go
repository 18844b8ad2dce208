package inertia

// Props is the prop mapping passed to Share and Render.
type Props map[string]any

// LazyProp defers computing a prop until it is actually included in a
// payload. On a full render lazy props are dropped; on a partial reload
// the producer runs only if the key was requested.
//
//	inertia.Props{
//	    "users": inertia.Lazy(func() any { return listUsers() }),
//	}
type LazyProp struct {
	fn    func() any
	value any
}

// Lazy wraps a producer function as a lazy prop.
func Lazy(fn func() any) *LazyProp {
	return &LazyProp{fn: fn}
}

// LazyValue wraps an already-computed value as a lazy prop, so it is
// still omitted from full renders and only shipped on request.
func LazyValue(v any) *LazyProp {
	return &LazyProp{value: v}
}

func (p *LazyProp) resolve() any {
	if p.fn != nil {
		return p.fn()
	}
	return p.value
}

// Propper is implemented by structured prop values that want to control
// their canonical field mapping. Values that don't implement it are
// handed to the JSON marshaller as-is, which already produces a field
// mapping for plain structs.
type Propper interface {
	Props() map[string]any
}

// mergeProps copies src into dst, later keys overriding earlier ones.
func mergeProps(dst, src Props) {
	for k, v := range src {
		dst[k] = v
	}
}

// buildProps computes the final prop set for a render. On a partial
// render only the requested keys survive; otherwise lazy props are
// dropped. Remaining values are resolved recursively. The input map is
// never mutated.
func buildProps(props Props, c classification) Props {
	out := make(Props, len(props))

	if c.IsPartial {
		keep := make(map[string]struct{}, len(c.PartialKeys))
		for _, k := range c.PartialKeys {
			keep[k] = struct{}{}
		}
		for k, v := range props {
			if _, ok := keep[k]; ok {
				out[k] = resolveValue(v)
			}
		}
		return out
	}

	for k, v := range props {
		if _, lazy := v.(*LazyProp); lazy {
			continue
		}
		out[k] = resolveValue(v)
	}
	return out
}

// resolveValue materializes a single prop value. Recursion descends into
// nested string-keyed mappings only, not sequences or scalars. Nested
// maps are copied, never modified in place.
func resolveValue(v any) any {
	switch v := v.(type) {
	case *LazyProp:
		return v.resolve()
	case Propper:
		return v.Props()
	case Props:
		return resolveMap(v)
	case map[string]any:
		return resolveMap(v)
	default:
		return v
	}
}

func resolveMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = resolveValue(v)
	}
	return out
}
