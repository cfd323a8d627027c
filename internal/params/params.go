// Package params reconstructs typed, named, valued argument lists for
// parameterized benchmarks from their textual declaration and value lists.
//
// A declaration list looks like "(std::string a, int b = -1)" and a value
// list like "(\"x\")". Commas nested inside <>, (), [] or {} or inside quoted
// literals never split a list, so template arguments and string literals pass
// through as a single token.
package params

import "strings"

// Variadic is the name of the parameter that soaks up all trailing values.
const Variadic = "..."

// Parameter is one reconstructed formal parameter.
type Parameter struct {
	// Type is the leading type token. Empty for "..." and for declarations
	// without a top-level space.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Name string `json:"name" yaml:"name"`
	// Value is the positional value supplied at instantiation, or the
	// embedded default when none was supplied.
	Value string `json:"value" yaml:"value"`
	// Declaration is the declaration text without its default.
	Declaration string `json:"declaration" yaml:"declaration"`
}

// IsVariadic reports whether p is the "..." sentinel.
func (p Parameter) IsVariadic() bool {
	return p.Type == "" && p.Name == Variadic
}

func (p Parameter) String() string {
	var b strings.Builder
	if p.Type != "" {
		b.WriteString(p.Type)
		b.WriteByte(' ')
	}
	b.WriteString(p.Name)
	if p.Value != "" {
		b.WriteString(" = ")
		b.WriteString(p.Value)
	}
	return b.String()
}

// Parameters is an ordered, immutable parameter list.
type Parameters []Parameter

// Parse builds the parameter list from a declaration list and a value list.
// Values override embedded defaults index for index; surplus values are
// ignored unless a variadic declaration absorbs them.
func Parse(declarations, values string) Parameters {
	decls, _ := splitList(declarations)
	if len(decls) == 0 {
		return nil
	}

	out := make(Parameters, 0, len(decls))
	for _, d := range decls {
		out = append(out, parseDeclaration(d.text))
	}

	vals, body := splitList(values)
	for i := range out {
		if i >= len(vals) {
			break
		}
		if out[i].IsVariadic() {
			out[i].Value = trim(body[vals[i].start:])
			break
		}
		out[i].Value = vals[i].text
	}
	return out
}

// Empty reports whether there are no parameters.
func (ps Parameters) Empty() bool {
	return len(ps) == 0
}

// Clone returns a copy that does not share storage with ps.
func (ps Parameters) Clone() Parameters {
	if ps == nil {
		return nil
	}
	out := make(Parameters, len(ps))
	copy(out, ps)
	return out
}

// Lookup returns the parameter with the given name.
func (ps Parameters) Lookup(name string) (Parameter, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// String renders "(type name = value, ...)", or "" for an empty list.
func (ps Parameters) String() string {
	if len(ps) == 0 {
		return ""
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func parseDeclaration(decl string) Parameter {
	var sc scanner
	typ, rest := "", decl
	for i := 0; i < len(decl); i++ {
		c := decl[i]
		if sc.topLevel(c) && c == ' ' {
			typ, rest = decl[:i], decl[i+1:]
			break
		}
	}

	p := Parameter{Type: typ}
	offset := len(decl) - len(rest)
	if eq := strings.IndexByte(rest, '='); eq >= 0 {
		p.Name = trim(rest[:eq])
		p.Value = trim(rest[eq+1:])
		p.Declaration = trim(decl[:offset+eq])
	} else {
		p.Name = trim(rest)
		p.Declaration = decl
	}
	return p
}
