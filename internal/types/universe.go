package types

import "github.com/you-not-fish/jmm/internal/syntax"

// Universe is the root context. It binds the primitive types and the
// predeclared classes of java.lang, under both simple and qualified names.
var Universe *Context

var (
	universeObject *Class
	universeString *Class
)

func init() {
	Universe = NewContext(nil, UniverseScope, "universe")
	defPredeclaredTypes()
	defPredeclaredClasses()
}

// defPredeclaredTypes binds int, boolean, char, long, double and void.
func defPredeclaredTypes() {
	for _, kind := range []BasicKind{Void, Boolean, Char, Int, Long, Double} {
		t := Typ[kind]
		Universe.Insert(t.name, NewTypeNameDefn(t))
	}
}

// defPredeclaredClasses binds Object and String.
func defPredeclaredClasses() {
	universeObject = NewExternalClass("java.lang.Object", nil)
	universeString = NewExternalClass("java.lang.String", universeObject)
	universeObject.SetModifiers(syntax.Public)
	universeString.SetModifiers(syntax.Public | syntax.Final)
	for _, c := range []*Class{universeObject, universeString} {
		d := NewTypeNameDefn(c)
		Universe.Insert(c.Name(), d)
		Universe.Insert(c.QualifiedName(), d)
	}
}

// Object returns java.lang.Object, the root of the class hierarchy and the
// default superclass.
func Object() *Class { return universeObject }

// String returns java.lang.String.
func String() *Class { return universeString }
