package doclet

import "strings"

// ConsolidateParams merges dotted parameter names ("options.location") into
// nested Properties of the root parameter named by the first segment. Plain
// parameters keep their order; a root with no entry of its own is synthesized
// as an Object parameter and appended. The input slice and its elements are
// not modified.
func ConsolidateParams(params []*Param) []*Param {
	if len(params) == 0 {
		return params
	}

	result := make([]*Param, 0, len(params))
	roots := make(map[string]*Param)
	for _, p := range params {
		if p == nil || isDotted(p.Name) {
			continue
		}
		cp := p.clone()
		result = append(result, cp)
		if cp.Name != "" {
			roots[cp.Name] = cp
		}
	}

	for _, p := range params {
		if p == nil || !isDotted(p.Name) {
			continue
		}
		parts := strings.Split(p.Name, ".")
		root, ok := roots[parts[0]]
		if !ok {
			root = &Param{Name: parts[0], Type: &TypeSpec{Names: []string{"Object"}}}
			roots[parts[0]] = root
			result = append(result, root)
		}

		current := root
		for i, part := range parts[1:] {
			prop := current.property(part)
			if prop == nil {
				prop = &Param{Name: part}
				current.Properties = append(current.Properties, prop)
			}
			if i == len(parts)-2 {
				if p.Type != nil {
					prop.Type = p.Type
				}
				if p.Description != "" {
					prop.Description = p.Description
				}
				if p.Optional != nil {
					prop.Optional = p.Optional
				}
				if p.HasDefault() {
					prop.DefaultValue = p.DefaultValue
				}
			}
			current = prop
		}
	}
	return result
}

func isDotted(name string) bool {
	return strings.Contains(name, ".") && !strings.HasPrefix(name, ".")
}
