package block

import "sort"

// Shape is the outline family of a block
type Shape uint8

const (
	ShapeStack Shape = iota
	ShapeHat
	ShapeC // one nested body
	ShapeE // two nested bodies
	ShapeReporter
	ShapeBoolean
)

// Class is the attachment class of a shape. Classes never cross.
type Class uint8

const (
	ClassStack Class = iota
	ClassReporter
	ClassBoolean
)

func (c Class) String() string {
	switch c {
	case ClassStack:
		return "stack"
	case ClassReporter:
		return "reporter"
	case ClassBoolean:
		return "boolean"
	}
	return "invalid"
}

// Class folds stack-like shapes into ClassStack
func (s Shape) Class() Class {
	switch s {
	case ShapeReporter:
		return ClassReporter
	case ShapeBoolean:
		return ClassBoolean
	}
	return ClassStack
}

// ElementKind is the type of a laid-out block element
type ElementKind uint8

const (
	ElemLabel    ElementKind = iota // fixed text
	ElemNumber                      // numeric capsule, may host a reporter
	ElemText                        // text capsule, may host a reporter
	ElemDropdown                    // Opt selector
	ElemBoolean                     // hexagonal notch for a boolean
	ElemColor                       // RGB swatch stored in D/E/F
)

// Element is one left-to-right item in a block's header row
type Element struct {
	Kind   ElementKind
	Label  string
	Field  Field
	Slot   Slot
	Source ChoiceSource
}

// Editable reports whether a pointer press on an empty element edits its literal
func (e Element) Editable() bool {
	return e.Kind == ElemNumber || e.Kind == ElemText
}

// Defaults are the palette-spawn values of a block
type Defaults struct {
	A, B, C, D, E, F float64
	Text, Text2      string
	Opt              int
}

// Def describes one (kind, subtype) pair. The element list is the single
// layout description shared by drawing and hit testing.
type Def struct {
	Kind     Kind
	Subtype  Subtype
	Name     string
	Shape    Shape
	Cap      bool // nothing may attach below
	Elements []Element
	Defaults Defaults
}

// Class returns the attachment class
func (d *Def) Class() Class {
	return d.Shape.Class()
}

// HasBefore reports whether a chain may attach above this block
func (d *Def) HasBefore() bool {
	return d.Class() == ClassStack && d.Shape != ShapeHat
}

// HasAfter reports whether a block may attach below this block
func (d *Def) HasAfter() bool {
	return d.Class() == ClassStack && !d.Cap
}

// Bodies returns the number of nested bodies (0, 1 or 2)
func (d *Def) Bodies() int {
	switch d.Shape {
	case ShapeC:
		return 1
	case ShapeE:
		return 2
	}
	return 0
}

// HasCondition reports whether the header carries a condition slot
func (d *Def) HasCondition() bool {
	for _, e := range d.Elements {
		if e.Slot == SlotCondition {
			return true
		}
	}
	return false
}

// SlotElement returns the element bound to slot s
func (d *Def) SlotElement(s Slot) (Element, bool) {
	for _, e := range d.Elements {
		if e.Slot == s && s != SlotNone {
			return e, true
		}
	}
	return Element{}, false
}

// Accepts reports whether slot s on this block takes a block of class c
func (d *Def) Accepts(s Slot, c Class) bool {
	switch s {
	case SlotNext:
		return d.HasAfter() && c == ClassStack
	case SlotChild:
		return d.Bodies() >= 1 && c == ClassStack
	case SlotChild2:
		return d.Bodies() == 2 && c == ClassStack
	}
	e, ok := d.SlotElement(s)
	if !ok {
		return false
	}
	if e.Kind == ElemBoolean {
		return c == ClassBoolean
	}
	return c == ClassReporter
}

var (
	catalog     = make(map[Key]*Def)
	catalogList []*Def
)

// Lookup returns the definition for a pair, nil when unknown
func Lookup(k Kind, s Subtype) *Def {
	return catalog[Key{Kind: k, Subtype: s}]
}

// LookupName resolves a definition by kind and stable name
func LookupName(k Kind, name string) *Def {
	for _, d := range catalogList {
		if d.Kind == k && d.Name == name {
			return d
		}
	}
	return nil
}

// Defs returns every definition of a kind in palette order
func Defs(k Kind) []*Def {
	var out []*Def
	for _, d := range catalogList {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

func register(defs ...*Def) {
	for _, d := range defs {
		key := Key{Kind: d.Kind, Subtype: d.Subtype}
		if _, dup := catalog[key]; dup {
			panic("block: duplicate definition " + d.Kind.String() + "." + d.Name)
		}
		catalog[key] = d
		catalogList = append(catalogList, d)
	}
	sort.SliceStable(catalogList, func(i, j int) bool {
		if catalogList[i].Kind != catalogList[j].Kind {
			return catalogList[i].Kind < catalogList[j].Kind
		}
		return catalogList[i].Subtype < catalogList[j].Subtype
	})
}

// Element constructors keep the definition table readable

func lbl(text string) Element {
	return Element{Kind: ElemLabel, Label: text}
}

func num(f Field, s Slot) Element {
	return Element{Kind: ElemNumber, Field: f, Slot: s}
}

func txt(f Field, s Slot) Element {
	return Element{Kind: ElemText, Field: f, Slot: s}
}

func drop(src ChoiceSource) Element {
	return Element{Kind: ElemDropdown, Source: src}
}

func cond(s Slot) Element {
	return Element{Kind: ElemBoolean, Slot: s}
}

func swatch() Element {
	return Element{Kind: ElemColor}
}
