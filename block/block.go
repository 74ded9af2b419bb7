// Package block holds the script graph: block instances, their link fields,
// the per-actor collection that owns them, and the catalog of block kinds.
package block

// ID identifies a block within its owning graph. None means "no link".
type ID int

// None is the null link value
const None ID = 0

// Kind is the block category
type Kind uint8

const (
	KindMotion Kind = iota
	KindLooks
	KindSound
	KindEvents
	KindControl
	KindSensing
	KindOperators
	KindVariables
	KindPen
	kindCount
)

var kindNames = [kindCount]string{
	KindMotion:    "motion",
	KindLooks:     "looks",
	KindSound:     "sound",
	KindEvents:    "events",
	KindControl:   "control",
	KindSensing:   "sensing",
	KindOperators: "operators",
	KindVariables: "variables",
	KindPen:       "pen",
}

// String returns the stable lowercase kind name
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every kind in palette order
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a kind name, ok is false for unknown names
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Subtype selects the operation within a kind. Values are kind-local.
type Subtype uint8

// Key is the (kind, subtype) dispatch pair
type Key struct {
	Kind    Kind
	Subtype Subtype
}

// Field names a literal operand slot on a block
type Field uint8

const (
	FieldNone Field = iota
	FieldA
	FieldB
	FieldC
	FieldD
	FieldE
	FieldF
	FieldText
	FieldText2
)

// IsNumeric reports whether the field stores a number
func (f Field) IsNumeric() bool {
	return f >= FieldA && f <= FieldF
}

// Slot names a link field on a block
type Slot uint8

const (
	SlotNone Slot = iota
	SlotNext
	SlotChild
	SlotChild2
	SlotCondition
	SlotArg0
	SlotArg1
	SlotArg2
)

var slotNames = [...]string{"none", "next", "child", "child2", "condition", "arg0", "arg1", "arg2"}

func (s Slot) String() string {
	if int(s) < len(slotNames) {
		return slotNames[s]
	}
	return "invalid"
}

// ArgSlot returns the slot for argument index i (0..2)
func ArgSlot(i int) Slot {
	return SlotArg0 + Slot(i)
}

// ArgIndex returns the argument index of s, or -1 when s is not an argument slot
func (s Slot) ArgIndex() int {
	if s >= SlotArg0 && s <= SlotArg2 {
		return int(s - SlotArg0)
	}
	return -1
}

// linkSlots is the fixed traversal order used by every walk
var linkSlots = [...]Slot{SlotArg0, SlotArg1, SlotArg2, SlotCondition, SlotChild, SlotChild2, SlotNext}

// Block is one node of the script graph
type Block struct {
	ID      ID
	Kind    Kind
	Subtype Subtype

	// Literal operands, meaning depends on Kind/Subtype
	A, B, C, D, E, F float64
	Text, Text2      string

	// Opt is a dropdown choice index, clamped at read time
	Opt int

	// Absolute workspace position; authoritative only on roots
	X, Y int

	Next      ID
	Parent    ID
	Child     ID
	Child2    ID
	Condition ID
	Args      [3]ID
}

// Key returns the dispatch pair
func (b *Block) Key() Key {
	return Key{Kind: b.Kind, Subtype: b.Subtype}
}

// Def returns the catalog definition, nil for unknown pairs
func (b *Block) Def() *Def {
	return Lookup(b.Kind, b.Subtype)
}

// Link returns the id stored in slot s
func (b *Block) Link(s Slot) ID {
	switch s {
	case SlotNext:
		return b.Next
	case SlotChild:
		return b.Child
	case SlotChild2:
		return b.Child2
	case SlotCondition:
		return b.Condition
	case SlotArg0, SlotArg1, SlotArg2:
		return b.Args[s.ArgIndex()]
	}
	return None
}

// SetLink stores id in slot s. The inverse Parent field is the caller's job.
func (b *Block) SetLink(s Slot, id ID) {
	switch s {
	case SlotNext:
		b.Next = id
	case SlotChild:
		b.Child = id
	case SlotChild2:
		b.Child2 = id
	case SlotCondition:
		b.Condition = id
	case SlotArg0, SlotArg1, SlotArg2:
		b.Args[s.ArgIndex()] = id
	}
}

// ForEachLink calls fn for every non-empty outgoing link in traversal order
func (b *Block) ForEachLink(fn func(Slot, ID)) {
	for _, s := range linkSlots {
		if id := b.Link(s); id != None {
			fn(s, id)
		}
	}
}

// Number returns a numeric literal field
func (b *Block) Number(f Field) float64 {
	switch f {
	case FieldA:
		return b.A
	case FieldB:
		return b.B
	case FieldC:
		return b.C
	case FieldD:
		return b.D
	case FieldE:
		return b.E
	case FieldF:
		return b.F
	}
	return 0
}

// SetNumber writes a numeric literal field
func (b *Block) SetNumber(f Field, v float64) {
	switch f {
	case FieldA:
		b.A = v
	case FieldB:
		b.B = v
	case FieldC:
		b.C = v
	case FieldD:
		b.D = v
	case FieldE:
		b.E = v
	case FieldF:
		b.F = v
	}
}

// TextField returns a text literal field
func (b *Block) TextField(f Field) string {
	switch f {
	case FieldText:
		return b.Text
	case FieldText2:
		return b.Text2
	}
	return ""
}

// SetTextField writes a text literal field
func (b *Block) SetTextField(f Field, s string) {
	switch f {
	case FieldText:
		b.Text = s
	case FieldText2:
		b.Text2 = s
	}
}
