package value

// Infer classifies a descriptor. Two literals found in table become a
// BooleanMap; any other literal set becomes an Enum in input order. A bare
// NUM is numeric and any other bare name is opaque. A nil table means
// DefaultCoercions.
func Infer(d Descriptor, table CoercionTable) Spec {
	if table == nil {
		table = DefaultCoercions
	}
	switch d.Shape {
	case ShapeList:
		return List{Separator: d.Separator}
	case ShapeKeyValue:
		return KeyValue{Separator: d.Separator}
	case ShapeLiterals:
		if len(d.Literals) == 2 {
			if p, ok := table.Match(d.Literals[0], d.Literals[1]); ok {
				return BooleanMap{True: p.True, False: p.False}
			}
		}
		values := make([]string, len(d.Literals))
		copy(values, d.Literals)
		return Enum{Values: values}
	}
	if d.Name == "NUM" {
		return Num{}
	}
	return Name{Name: d.Name}
}
