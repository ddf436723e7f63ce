package syntax

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// Test helpers

func parseFile(t *testing.T, src string) *File {
	t.Helper()
	f, errs := parseFileWithErrors(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected syntax errors:\n%s", strings.Join(errs, "\n"))
	}
	return f
}

func parseFileWithErrors(t *testing.T, src string) (*File, []string) {
	t.Helper()
	var errs []string
	errh := func(pos Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	}
	p := NewParser("Test.java", strings.NewReader(src), errh)
	f := p.Parse()
	if f == nil {
		t.Fatal("Parse returned nil")
	}
	return f, errs
}

// ----------------------------------------------------------------------------
// Units

func TestParsePackageAndImports(t *testing.T) {
	f := parseFile(t, `
package pass;

import java.lang.System;
import java.util.*;

class A {}
`)
	if f.Package == nil || f.Package.String() != "pass" {
		t.Fatalf("Package = %v, want pass", f.Package)
	}
	if len(f.Imports) != 2 {
		t.Fatalf("got %d imports, want 2", len(f.Imports))
	}
	if got := f.Imports[0].Path.String(); got != "java.lang.System" {
		t.Errorf("Imports[0] = %q, want java.lang.System", got)
	}
	if f.Imports[0].OnDemand {
		t.Errorf("Imports[0] should not be on-demand")
	}
	if !f.Imports[1].OnDemand {
		t.Errorf("Imports[1] should be on-demand")
	}
}

func TestParseClassHeader(t *testing.T) {
	f := parseFile(t, `
public abstract class Dog extends Animal implements Pet, Comparable {
}
`)
	if len(f.Decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(f.Decls))
	}
	d, ok := f.Decls[0].(*ClassDecl)
	if !ok {
		t.Fatalf("Decls[0] is %T, want *ClassDecl", f.Decls[0])
	}
	if d.Name.Value != "Dog" {
		t.Errorf("Name = %q, want Dog", d.Name.Value)
	}
	if !d.Mods.Has(Public | Abstract) {
		t.Errorf("Mods = %v, want public abstract", d.Mods.Names())
	}
	if got := TypeString(d.Super); got != "Animal" {
		t.Errorf("Super = %q, want Animal", got)
	}
	var ifaces []string
	for _, i := range d.Interfaces {
		ifaces = append(ifaces, TypeString(i))
	}
	if strings.Join(ifaces, ",") != "Pet,Comparable" {
		t.Errorf("Interfaces = %v, want [Pet Comparable]", ifaces)
	}
	if d.Pos().Line() != 2 {
		t.Errorf("Pos().Line() = %d, want 2", d.Pos().Line())
	}
}

func TestParseClassWithoutSuper(t *testing.T) {
	f := parseFile(t, "class Animal {}\n")
	d := f.Decls[0].(*ClassDecl)
	if d.Super != nil {
		t.Errorf("Super = %v, want nil", TypeString(d.Super))
	}
	if len(d.Interfaces) != 0 {
		t.Errorf("Interfaces = %d, want 0", len(d.Interfaces))
	}
}

func TestParseQualifiedSuper(t *testing.T) {
	f := parseFile(t, "class A extends java.lang.Object {}\n")
	d := f.Decls[0].(*ClassDecl)
	q, ok := d.Super.(*QualifiedName)
	if !ok {
		t.Fatalf("Super is %T, want *QualifiedName", d.Super)
	}
	if q.String() != "java.lang.Object" || q.Last().Value != "Object" {
		t.Errorf("Super = %q", q.String())
	}
}

func TestParseInterface(t *testing.T) {
	f := parseFile(t, `
interface Walker extends Mover, Thing {
	int LEGS = 2;
	void walk(int steps);
}
`)
	d, ok := f.Decls[0].(*InterfaceDecl)
	if !ok {
		t.Fatalf("Decls[0] is %T, want *InterfaceDecl", f.Decls[0])
	}
	if len(d.Extends) != 2 || TypeString(d.Extends[0]) != "Mover" || TypeString(d.Extends[1]) != "Thing" {
		t.Errorf("Extends = %v", d.Extends)
	}
	if len(d.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(d.Members))
	}
	if _, ok := d.Members[0].(*FieldDecl); !ok {
		t.Errorf("Members[0] is %T, want *FieldDecl", d.Members[0])
	}
	m, ok := d.Members[1].(*MethodDecl)
	if !ok {
		t.Fatalf("Members[1] is %T, want *MethodDecl", d.Members[1])
	}
	if m.HasBody {
		t.Errorf("abstract interface method should have no body")
	}
}

// ----------------------------------------------------------------------------
// Members

func TestParseMembers(t *testing.T) {
	f := parseFile(t, `
class Counter {
	private int count, limit;
	static String[] names;

	public Counter(int start) { count = start; }

	public int next(int step, long[] history) {
		count = count + step;
		return count;
	}

	void reset() {}
}
`)
	d := f.Decls[0].(*ClassDecl)
	if len(d.Members) != 5 {
		t.Fatalf("got %d members, want 5", len(d.Members))
	}

	fd := d.Members[0].(*FieldDecl)
	if TypeString(fd.Type) != "int" || len(fd.Names) != 2 || fd.Names[1].Value != "limit" {
		t.Errorf("field decl = %s %v", TypeString(fd.Type), fd.Names)
	}
	if !fd.Mods.Has(Private) {
		t.Errorf("field should be private")
	}

	fd2 := d.Members[1].(*FieldDecl)
	if TypeString(fd2.Type) != "String[]" || !fd2.Mods.Has(Static) {
		t.Errorf("second field = %s %v", TypeString(fd2.Type), fd2.Mods.Names())
	}

	ctor := d.Members[2].(*ConstructorDecl)
	if ctor.Name.Value != "Counter" || len(ctor.Params) != 1 {
		t.Errorf("constructor = %s/%d", ctor.Name.Value, len(ctor.Params))
	}

	next := d.Members[3].(*MethodDecl)
	if next.Name.Value != "next" || TypeString(next.Result) != "int" || !next.HasBody {
		t.Errorf("method next = %s %s body=%v", TypeString(next.Result), next.Name.Value, next.HasBody)
	}
	if len(next.Params) != 2 {
		t.Fatalf("next has %d params, want 2", len(next.Params))
	}
	if next.Params[1].Name.Value != "history" || TypeString(next.Params[1].Type) != "long[]" {
		t.Errorf("param 1 = %s %s", TypeString(next.Params[1].Type), next.Params[1].Name.Value)
	}

	reset := d.Members[4].(*MethodDecl)
	if reset.Result != nil {
		t.Errorf("void method should have nil Result, got %s", TypeString(reset.Result))
	}
}

func TestParseVariadicParam(t *testing.T) {
	f := parseFile(t, "class A { void f(String fmt, int... xs) {} }\n")
	m := f.Decls[0].(*ClassDecl).Members[0].(*MethodDecl)
	if len(m.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(m.Params))
	}
	if m.Params[0].Variadic {
		t.Errorf("fmt should not be variadic")
	}
	xs := m.Params[1]
	if xs.Name == nil || xs.Name.Value != "xs" || TypeString(xs.Type) != "int[]" || !xs.Variadic {
		t.Errorf("param 1 = %s %v variadic=%v", TypeString(xs.Type), xs.Name, xs.Variadic)
	}
}

func TestParseFieldDimensions(t *testing.T) {
	f := parseFile(t, `
class A {
	int a[], b, c;
	long[] d[][];
	String e, g[];
}
`)
	var got []string
	for _, m := range f.Decls[0].(*ClassDecl).Members {
		fd := m.(*FieldDecl)
		var names []string
		for _, n := range fd.Names {
			names = append(names, n.Value)
		}
		got = append(got, TypeString(fd.Type)+" "+strings.Join(names, ","))
	}
	want := []string{"int[] a", "int b,c", "long[][][] d", "String e", "String[] g"}
	if strings.Join(got, "; ") != strings.Join(want, "; ") {
		t.Errorf("fields = %q, want %q", got, want)
	}
}

// ----------------------------------------------------------------------------
// Errors

func TestParseSyntaxErrorIsReported(t *testing.T) {
	f, errs := parseFileWithErrors(t, "class A extends { int x }\n")
	if len(errs) == 0 {
		t.Fatal("expected syntax errors")
	}
	if f == nil {
		t.Fatal("Parse must return a file even on errors")
	}
}

func TestParserErr(t *testing.T) {
	p := NewParser("Bad.java", strings.NewReader("class {"), nil)
	p.Parse()
	if p.Err() == nil {
		t.Fatal("Err() = nil, want syntax error")
	}
	if !strings.HasPrefix(p.Err().Error(), "Bad.java:") {
		t.Errorf("Err() = %q, want position prefix", p.Err())
	}
}

// ----------------------------------------------------------------------------
// JSON

func TestFprintJSON(t *testing.T) {
	f := parseFile(t, "class Dog extends Animal { int legs; }\n")
	var buf bytes.Buffer
	if err := FprintJSON(&buf, f); err != nil {
		t.Fatal(err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	decls := got["decls"].([]interface{})
	dog := decls[0].(map[string]interface{})
	if dog["name"] != "Dog" {
		t.Errorf("name = %v, want Dog", dog["name"])
	}
	if super := dog["super"].(map[string]interface{}); super["name"] != "Animal" {
		t.Errorf("super = %v, want Animal", super["name"])
	}
}

// ----------------------------------------------------------------------------
// Text dump

func TestFprint(t *testing.T) {
	f := parseFile(t, `package zoo;
import java.util.*;
public class Dog extends Animal implements Pet {
	private int legs, tail;
	Dog(int legs) {}
	abstract void bark(long times);
}
`)
	var buf bytes.Buffer
	Fprint(&buf, f)
	want := `File Test.java:1:1
  Package: zoo
  ImportDecl Test.java:2:1 java.util.*
  ClassDecl Test.java:3:1
    Mods: public
    Name: Dog
    Super: Animal
    Implements: Pet
    FieldDecl Test.java:4:2
      Mods: private
      Type: int
      Names: legs, tail
    ConstructorDecl Test.java:5:2
      Name: Dog
      Params:
        int legs
    MethodDecl Test.java:6:2
      Mods: abstract
      Name: bark
      Params:
        long times
      Result: void
      Body: none
`
	if got := buf.String(); got != want {
		t.Errorf("Fprint mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
