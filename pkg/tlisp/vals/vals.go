// Package vals contains basic facilities for manipulating T-Lisp values in
// Go.
//
// T-Lisp values are represented by native Go values whenever possible:
// nil, booleans and strings are Go nil, bool and string; numbers are Go
// float64. The remaining variants have dedicated types: Symbol, List and Map.
// Function-like values (builtins, closures and macros) live in the eval
// package and hook into this package via the Kinder, Reprer and Equaler
// interfaces.
//
// A value always has exactly one of these representations; operations in
// this package dispatch on the representation with exhaustive type switches.
package vals

import "src.tled.dev/pkg/persistent/hashmap"

// Symbol is a T-Lisp symbol. It is distinct from string, which represents
// string literals.
type Symbol string

// List is the underlying type used for T-Lisp lists.
type List = []any

// Map is the underlying type used for T-Lisp hashmaps. It is persistent:
// Assoc and Dissoc return new maps, leaving the receiver intact.
type Map = hashmap.Map

// EmptyMap is an empty Map.
var EmptyMap = hashmap.Empty

// MakeList creates a new List from values.
func MakeList(vs ...any) List { return vs }
