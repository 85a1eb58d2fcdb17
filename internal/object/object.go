// Package object implements the O2L runtime value system (spec §3.1) and
// the ObjectInstance model (spec §3.2).
package object

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Kind is the tag of a Value — "the type of a value means its tag" (§3.1).
type Kind string

const (
	KInt    Kind = "Int"
	KLong   Kind = "Long"
	KFloat  Kind = "Float"
	KDouble Kind = "Double"
	KBool   Kind = "Bool"
	KChar   Kind = "Char"
	KText   Kind = "Text"
	KList   Kind = "List"
	KMap    Kind = "Map"
	KSet    Kind = "Set"
	KEnum   Kind = "Enum"
	KRecord Kind = "Record"
	KObject Kind = "Object"
	KError  Kind = "Error"
	KResult Kind = "Result"
)

// numeric promotion lattice: Int < Long < Float < Double (§3.4, §4.3.4).
var numericRank = map[Kind]int{
	KInt:    0,
	KLong:   1,
	KFloat:  2,
	KDouble: 3,
}

// IsNumeric reports whether k is one of the four numeric tags.
func IsNumeric(k Kind) bool {
	_, ok := numericRank[k]
	return ok
}

// WiderKind returns the tag that a and b promote to under the lattice.
// Both arguments must be numeric kinds.
func WiderKind(a, b Kind) Kind {
	if numericRank[a] >= numericRank[b] {
		return a
	}
	return b
}

// Value is the single runtime representation every AST node evaluates to.
type Value interface {
	Kind() Kind
	Inspect() string
}

// Callable is an interface for a value that can be called with arguments.
// Method bodies do not implement it: both user-declared and native methods
// are stored as the Fn closure of a Method.
type Callable interface {
	Call(args []Value) (Value, error)
}

type Int struct{ V int32 }

func (Int) Kind() Kind           { return KInt }
func (v Int) Inspect() string    { return fmt.Sprintf("%d", v.V) }

type Long struct{ V int64 }

func (Long) Kind() Kind        { return KLong }
func (v Long) Inspect() string { return fmt.Sprintf("%d", v.V) }

type Float struct{ V float32 }

func (Float) Kind() Kind        { return KFloat }
func (v Float) Inspect() string { return fmt.Sprintf("%g", v.V) }

type Double struct{ V float64 }

func (Double) Kind() Kind        { return KDouble }
func (v Double) Inspect() string { return fmt.Sprintf("%g", v.V) }

type Bool struct{ V bool }

func (Bool) Kind() Kind        { return KBool }
func (v Bool) Inspect() string { return fmt.Sprintf("%t", v.V) }

type Char struct{ V rune }

func (Char) Kind() Kind        { return KChar }
func (v Char) Inspect() string { return string(v.V) }

type Text struct{ V string }

func (Text) Kind() Kind        { return KText }
func (v Text) Inspect() string { return v.V }

// List is an ordered, mutable sequence with a recorded element-type tag.
type List struct {
	ElemKind Kind
	Items    []Value
}

func (*List) Kind() Kind { return KList }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapPair is one insertion-ordered entry of a Map.
type MapPair struct {
	Key   Value
	Value Value
}

// Map is an insertion-ordered mapping; duplicate-key insertion overwrites
// the existing entry in place (preserving its original position), per §3.1.
type Map struct {
	KeyKind   Kind
	ValueKind Kind
	Pairs     []MapPair
}

func (*Map) Kind() Kind { return KMap }
func (m *Map) Inspect() string {
	parts := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		parts[i] = p.Key.Inspect() + ": " + p.Value.Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key Value) (Value, bool) {
	for _, p := range m.Pairs {
		if Equal(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

// Set inserts or overwrites key -> value, preserving original position on
// overwrite (insertion order semantics, §3.1).
func (m *Map) Set(key, value Value) {
	for i, p := range m.Pairs {
		if Equal(p.Key, key) {
			m.Pairs[i].Value = value
			return
		}
	}
	m.Pairs = append(m.Pairs, MapPair{Key: key, Value: value})
}

// Set is an unordered collection with unique membership (equality per §3.4).
type Set struct {
	ElemKind Kind
	Items    []Value
}

func (*Set) Kind() Kind { return KSet }
func (s *Set) Inspect() string {
	parts := make([]string, len(s.Items))
	for i, it := range s.Items {
		parts[i] = it.Inspect()
	}
	sort.Strings(parts)
	return "#{" + strings.Join(parts, ", ") + "}"
}

// Add inserts v if not already a member; returns true if it was added.
func (s *Set) Add(v Value) bool {
	for _, it := range s.Items {
		if Equal(it, v) {
			return false
		}
	}
	s.Items = append(s.Items, v)
	return true
}

func (s *Set) Contains(v Value) bool {
	for _, it := range s.Items {
		if Equal(it, v) {
			return true
		}
	}
	return false
}

// Enum is a named set of (memberName -> Int) pairs; a value of an Enum
// carries its enum name and the selected member.
type EnumType struct {
	Name    string
	Members map[string]int32
	Order   []string
}

type Enum struct {
	Type   *EnumType
	Member string
}

func (Enum) Kind() Kind { return KEnum }
func (e Enum) Inspect() string {
	return e.Type.Name + "." + e.Member
}

// Value returns the underlying Int value of the selected member.
func (e Enum) Value() int32 { return e.Type.Members[e.Member] }

// Record is a named struct with fixed field names and per-field values.
type RecordType struct {
	Name   string
	Fields []string // declared order
}

type Record struct {
	Type   *RecordType
	Values map[string]Value
}

func (*Record) Kind() Kind { return KRecord }
func (r *Record) Inspect() string {
	parts := make([]string, len(r.Type.Fields))
	for i, f := range r.Type.Fields {
		parts[i] = f + ": " + r.Values[f].Inspect()
	}
	return r.Type.Name + "{" + strings.Join(parts, ", ") + "}"
}

// Error is the record-like value produced by `new Error(...)`.
type Error struct {
	Message string
	Code    string
}

func (*Error) Kind() Kind       { return KError }
func (e *Error) Inspect() string { return fmt.Sprintf("Error{message: %q, code: %q}", e.Message, e.Code) }

// Result is either success(T) or error(E); constructible only via
// Result.success / Result.error (§3.1).
type Result struct {
	Ok    bool
	Value Value
}

func (*Result) Kind() Kind { return KResult }
func (r *Result) Inspect() string {
	if r.Ok {
		return "Result.success(" + r.Value.Inspect() + ")"
	}
	return "Result.error(" + r.Value.Inspect() + ")"
}

// Object is a shared reference to an ObjectInstance.
type Object struct {
	Instance *ObjectInstance
}

func (Object) Kind() Kind        { return KObject }
func (o Object) Inspect() string { return o.Instance.Inspect() }

// Visibility of an object method.
type Visibility int

const (
	Internal Visibility = iota
	External
)

// Method holds a callable implementation plus its declared visibility and
// optional signature (native methods may omit the signature, §3.2).
type Method struct {
	Name       string
	Visibility Visibility
	ParamTypes []string
	ReturnType string
	HasSig     bool
	Fn         func(receiver *ObjectInstance, args []Value) (Value, error)
}

// ObjectInstance is a named bag of methods and immutable, set-once
// properties (§3.2).
type ObjectInstance struct {
	id uuid.UUID

	Name       string
	Methods    map[string]*Method
	MethodOrd  []string
	Properties map[string]Value
	PropertyOrd []string
}

// NewObjectInstance creates an empty, named instance with a fresh identity.
func NewObjectInstance(name string) *ObjectInstance {
	return &ObjectInstance{
		id:         uuid.New(),
		Name:       name,
		Methods:    make(map[string]*Method),
		Properties: make(map[string]Value),
	}
}

// ID returns the instance's stable identity, minted once at construction.
// Exposed to user code only indirectly (e.g. via a reflection-style native
// module); never used for equality — objects have no user-visible equality
// operator of their own in this language.
func (o *ObjectInstance) ID() uuid.UUID { return o.id }

func (o *ObjectInstance) Inspect() string {
	return fmt.Sprintf("<%s instance %s>", o.Name, o.id)
}

// AddMethod registers a method, preserving declaration order.
func (o *ObjectInstance) AddMethod(m *Method) {
	if _, exists := o.Methods[m.Name]; !exists {
		o.MethodOrd = append(o.MethodOrd, m.Name)
	}
	o.Methods[m.Name] = m
}

// HasProperty reports whether name has already been bound — the principal
// immutability check (§3.2, §3.3 invariant 2).
func (o *ObjectInstance) HasProperty(name string) bool {
	_, ok := o.Properties[name]
	return ok
}

// SetProperty binds name to v. Callers MUST check HasProperty first; this
// method does not itself enforce the set-once rule so that construction
// code (which legitimately sets properties once, in order) doesn't need a
// separate bypass path.
func (o *ObjectInstance) SetProperty(name string, v Value) {
	if !o.HasProperty(name) {
		o.PropertyOrd = append(o.PropertyOrd, name)
	}
	o.Properties[name] = v
}

// Clone produces a fresh ObjectInstance sharing the same method table (the
// callables are reused; they close over nothing instance-specific) but a
// new identity and an empty property table. Properties are not copied:
// `New` (evalNew) fills the new instance's properties itself.
func (o *ObjectInstance) Clone() *ObjectInstance {
	fresh := NewObjectInstance(o.Name)
	for _, name := range o.MethodOrd {
		fresh.AddMethod(o.Methods[name])
	}
	return fresh
}
