package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/jmm/internal/types"
)

// DeclSummary describes one bound type declaration.
type DeclSummary struct {
	Name       string          `json:"name" yaml:"name"`
	Kind       string          `json:"kind" yaml:"kind"`
	Pos        string          `json:"pos" yaml:"pos"`
	Phase      string          `json:"phase" yaml:"phase"`
	Modifiers  []string        `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Super      string          `json:"super,omitempty" yaml:"super,omitempty"`
	Interfaces []string        `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Fields     []FieldSummary  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods    []MethodSummary `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// FieldSummary describes a field header.
type FieldSummary struct {
	Name      string   `json:"name" yaml:"name"`
	Type      string   `json:"type" yaml:"type"`
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// MethodSummary describes a method or constructor header.
type MethodSummary struct {
	Signature   string   `json:"signature" yaml:"signature"`
	Result      string   `json:"result" yaml:"result"`
	Modifiers   []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Constructor bool     `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	// Frame is the number of slots taken by this and the parameters.
	Frame int `json:"frame" yaml:"frame"`
}

// Summarize describes the declarations of u in source order.
func Summarize(u *Unit) []DeclSummary {
	out := make([]DeclSummary, 0, len(u.Decls))
	for _, td := range u.Decls {
		c := td.ThisType()
		s := DeclSummary{
			Name:      c.QualifiedName(),
			Kind:      classKind(c),
			Pos:       td.Pos().String(),
			Phase:     td.Phase().String(),
			Modifiers: c.Modifiers().Names(),
		}
		if t := td.SuperType(); t != nil && !c.IsInterface() {
			s.Super = t.String()
		}
		for _, t := range td.SuperInterfaces() {
			s.Interfaces = append(s.Interfaces, t.String())
		}
		for _, f := range c.Fields() {
			s.Fields = append(s.Fields, FieldSummary{
				Name:      f.Name(),
				Type:      f.Type().String(),
				Modifiers: f.Modifiers().Names(),
			})
		}
		for _, m := range c.Constructors() {
			s.Methods = append(s.Methods, methodSummary(c, m))
		}
		for _, m := range c.Methods() {
			s.Methods = append(s.Methods, methodSummary(c, m))
		}
		out = append(out, s)
	}
	return out
}

func methodSummary(c *types.Class, m *types.Method) MethodSummary {
	frame := types.NewFrame()
	if !m.IsStatic() {
		frame.Alloc(c)
	}
	for _, p := range m.Params() {
		frame.Alloc(p.Type)
	}
	return MethodSummary{
		Signature:   m.Signature(),
		Result:      m.Result().String(),
		Modifiers:   m.Modifiers().Names(),
		Constructor: m.IsConstructor(),
		Frame:       frame.Size(),
	}
}

// FprintJSON writes the summaries as indented JSON.
func FprintJSON(w io.Writer, sums []DeclSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sums)
}

// FprintYAML writes the summaries as a YAML sequence.
func FprintYAML(w io.Writer, sums []DeclSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sums); err != nil {
		return err
	}
	return enc.Close()
}

// FprintText writes the summaries in a compact, Java-like form:
//
//	class Dog extends Animal implements Pet {
//	  int legs
//	  Dog()  [frame 1]
//	  void bark(int)  [frame 2]
//	}
func FprintText(w io.Writer, sums []DeclSummary) error {
	var b strings.Builder
	for _, s := range sums {
		for _, m := range s.Modifiers {
			if s.Kind == "interface" && m == "abstract" {
				continue
			}
			b.WriteString(m + " ")
		}
		fmt.Fprintf(&b, "%s %s", s.Kind, s.Name)
		if s.Super != "" {
			fmt.Fprintf(&b, " extends %s", s.Super)
		}
		if len(s.Interfaces) > 0 {
			kw := "implements"
			if s.Kind == "interface" {
				kw = "extends"
			}
			fmt.Fprintf(&b, " %s %s", kw, strings.Join(s.Interfaces, ", "))
		}
		b.WriteString(" {\n")
		for _, f := range s.Fields {
			fmt.Fprintf(&b, "  %s%s %s\n", prefix(f.Modifiers), f.Type, f.Name)
		}
		for _, m := range s.Methods {
			if m.Constructor {
				fmt.Fprintf(&b, "  %s%s  [frame %d]\n", prefix(m.Modifiers), m.Signature, m.Frame)
				continue
			}
			fmt.Fprintf(&b, "  %s%s %s  [frame %d]\n", prefix(m.Modifiers), m.Result, m.Signature, m.Frame)
		}
		b.WriteString("}\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func prefix(mods []string) string {
	if len(mods) == 0 {
		return ""
	}
	return strings.Join(mods, " ") + " "
}
