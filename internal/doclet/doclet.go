// Package doclet defines the symbol records symdoc consumes (the JSON emitted
// by `jsdoc -X`) together with loading, filtering and parameter consolidation.
package doclet

import "encoding/json"

// TypeSpec is a doclet type expression.
type TypeSpec struct {
	Names []string `json:"names,omitempty"`
}

// Param describes a parameter, return value, thrown exception or property.
type Param struct {
	Name         string          `json:"name,omitempty"`
	Type         *TypeSpec       `json:"type,omitempty"`
	Description  string          `json:"description,omitempty"`
	Optional     *bool           `json:"optional,omitempty"`
	Nullable     *bool           `json:"nullable,omitempty"`
	Variable     bool            `json:"variable,omitempty"`
	DefaultValue json.RawMessage `json:"defaultvalue,omitempty"`
	Properties   []*Param        `json:"properties,omitempty"`
}

// HasDefault reports whether the record carried a defaultvalue key, even a null one.
func (p *Param) HasDefault() bool { return p.DefaultValue != nil }

// IsOptional reports whether the parameter is marked optional.
func (p *Param) IsOptional() bool { return p.Optional != nil && *p.Optional }

// IsNullable reports whether the parameter is marked nullable.
func (p *Param) IsNullable() bool { return p.Nullable != nil && *p.Nullable }

func (p *Param) clone() *Param {
	cp := *p
	if len(p.Properties) > 0 {
		cp.Properties = make([]*Param, 0, len(p.Properties))
		for _, prop := range p.Properties {
			if prop != nil {
				cp.Properties = append(cp.Properties, prop.clone())
			}
		}
	}
	return &cp
}

func (p *Param) property(name string) *Param {
	for _, prop := range p.Properties {
		if prop != nil && prop.Name == name {
			return prop
		}
	}
	return nil
}

// Meta locates the symbol in its source file.
type Meta struct {
	Filename string `json:"filename,omitempty"`
	Lineno   int    `json:"lineno,omitempty"`
	Path     string `json:"path,omitempty"`
}

// Symbol is one documented code entity. Longname is its global identity and
// Memberof the raw, convention-based reference to its owner.
type Symbol struct {
	Longname     string    `json:"longname"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	Scope        string    `json:"scope,omitempty"`
	Memberof     string    `json:"memberof,omitempty"`
	Params       []*Param  `json:"params,omitempty"`
	Undocumented bool      `json:"undocumented,omitempty"`
	Description  string    `json:"description,omitempty"`
	Classdesc    string    `json:"classdesc,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	Examples     []string  `json:"examples,omitempty"`
	Returns      []*Param  `json:"returns,omitempty"`
	Exceptions   []*Param  `json:"exceptions,omitempty"`
	Properties   []*Param  `json:"properties,omitempty"`
	Type         *TypeSpec `json:"type,omitempty"`
	Async        bool      `json:"async,omitempty"`
	Deprecated   any       `json:"deprecated,omitempty"`
	Since        string    `json:"since,omitempty"`
	See          []string  `json:"see,omitempty"`
	Access       string    `json:"access,omitempty"`
	Augments     []string  `json:"augments,omitempty"`
	Implements   []string  `json:"implements,omitempty"`
	Mixes        []string  `json:"mixes,omitempty"`
	Meta         *Meta     `json:"meta,omitempty"`

	// Extra keeps every raw field of the record, including the ones decoded above.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the raw record in Extra.
func (s *Symbol) UnmarshalJSON(data []byte) error {
	type plain Symbol
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var extra map[string]json.RawMessage
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	*s = Symbol(p)
	s.Extra = extra
	return nil
}

// IsDeprecated reports whether the deprecated tag was set.
func (s *Symbol) IsDeprecated() bool {
	switch v := s.Deprecated.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return true
	default:
		return true
	}
}

// DeprecationNote returns the text of a string-valued deprecated tag.
func (s *Symbol) DeprecationNote() string {
	if note, ok := s.Deprecated.(string); ok {
		return note
	}
	return ""
}
