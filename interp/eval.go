package interp

import (
	"math"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/lixenwraith/blockstage/block"
)

// maxDepth bounds expression nesting
const maxDepth = 256

// Eval computes the value of a reporter or boolean block. It reads actor
// and stage state and never changes it or the thread pool.
func (i *Interpreter) Eval(a Actor, id block.ID) Value {
	return i.eval(a, id, 0)
}

func (i *Interpreter) eval(a Actor, id block.ID, depth int) Value {
	b := a.Blocks().Get(id)
	if b == nil || depth > maxDepth {
		return Num(0)
	}
	arg := func(n int) Value { return i.argAt(a, b, n, depth+1) }
	sp := a.Sprite()
	st := i.stage

	switch b.Kind {
	case block.KindMotion:
		switch b.Subtype {
		case block.MotionXPosition:
			return Num(sp.X)
		case block.MotionYPosition:
			return Num(sp.Y)
		case block.MotionDirection:
			return Num(sp.Direction)
		}

	case block.KindLooks:
		switch b.Subtype {
		case block.LooksCostumeNumber:
			return Num(float64(sp.Costume + 1))
		case block.LooksSize:
			return Num(sp.Size)
		}

	case block.KindSound:
		if b.Subtype == block.SoundVolume {
			return Num(sp.Volume)
		}

	case block.KindSensing:
		switch b.Subtype {
		case block.SensingKeyPressed:
			return Bool(st.KeyDown(block.ChoiceLabel(block.KeyNames, b.Opt)))
		case block.SensingMouseDown:
			return Bool(st.MouseDown())
		case block.SensingMouseX:
			x, _ := st.Mouse()
			return Num(x)
		case block.SensingMouseY:
			_, y := st.Mouse()
			return Num(y)
		case block.SensingTimer:
			return Num(st.Timer())
		case block.SensingTouchingEdge:
			return Bool(sp.TouchingEdge())
		}

	case block.KindOperators:
		return i.operator(b, arg)

	case block.KindVariables:
		if b.Subtype == block.VarGet {
			if name, ok := variable(a, b); ok {
				return Str(st.Var(name))
			}
			return Num(0)
		}
	}
	return Num(0)
}

func (i *Interpreter) operator(b *block.Block, arg func(int) Value) Value {
	switch b.Subtype {
	case block.OpAdd:
		return Num(arg(0).Number() + arg(1).Number())
	case block.OpSubtract:
		return Num(arg(0).Number() - arg(1).Number())
	case block.OpMultiply:
		return Num(arg(0).Number() * arg(1).Number())
	case block.OpDivide:
		d := arg(1).Number()
		if d == 0 {
			return Num(0)
		}
		return Num(arg(0).Number() / d)
	case block.OpMod:
		n, d := arg(0).Number(), arg(1).Number()
		if d == 0 {
			return Num(0)
		}
		return Num(n - d*math.Floor(n/d))
	case block.OpRound:
		return Num(math.Round(arg(0).Number()))
	case block.OpRandom:
		return Num(i.random(arg(0).Number(), arg(1).Number()))

	case block.OpLess:
		return Bool(Compare(arg(0), arg(1)) < 0)
	case block.OpEqual:
		return Bool(Compare(arg(0), arg(1)) == 0)
	case block.OpGreater:
		return Bool(Compare(arg(0), arg(1)) > 0)
	case block.OpAnd:
		return Bool(arg(0).Truthy() && arg(1).Truthy())
	case block.OpOr:
		return Bool(arg(0).Truthy() || arg(1).Truthy())
	case block.OpNot:
		return Bool(!arg(0).Truthy())

	case block.OpJoin:
		return Str(arg(0).String() + arg(1).String())
	case block.OpLetterOf:
		return Str(LetterOf(arg(1).String(), arg(0).Number()))
	case block.OpLength:
		return Num(float64(uniseg.GraphemeClusterCount(arg(0).String())))
	}
	return Num(0)
}

// LetterOf returns the 1-based n-th character of s, "" when out of range
func LetterOf(s string, n float64) string {
	if n < 1 || n != math.Trunc(n) {
		return ""
	}
	idx := int(n)
	gr := uniseg.NewGraphemes(s)
	for k := 1; gr.Next(); k++ {
		if k == idx {
			return gr.Str()
		}
	}
	return ""
}

func (i *Interpreter) random(a, b float64) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	if lo == math.Trunc(lo) && hi == math.Trunc(hi) {
		span := int64(hi - lo)
		if span <= 0 {
			return lo
		}
		return lo + float64(i.rng.Int64N(span+1))
	}
	return lo + i.rng.Float64()*(hi-lo)
}

// argAt evaluates argument n: a plugged block, else the literal field the
// slot's element edits, else zero
func (i *Interpreter) argAt(a Actor, b *block.Block, n int, depth int) Value {
	slot := block.ArgSlot(n)
	if child := b.Link(slot); child != block.None && a.Blocks().Get(child) != nil {
		return i.eval(a, child, depth)
	}
	d := b.Def()
	if d == nil {
		return Num(0)
	}
	e, ok := d.SlotElement(slot)
	switch {
	case !ok || e.Field == block.FieldNone:
		return Num(0)
	case e.Field.IsNumeric():
		return Num(b.Number(e.Field))
	}
	return Str(b.TextField(e.Field))
}

// condition evaluates a condition slot; empty is false
func (i *Interpreter) condition(a Actor, id block.ID) bool {
	if a.Blocks().Get(id) == nil {
		return false
	}
	return i.Eval(a, id).Truthy()
}

// variable resolves a block's variable dropdown. An empty list names nothing.
func variable(a Actor, b *block.Block) (string, bool) {
	vars := a.Choices(block.SourceVariables)
	if len(vars) == 0 {
		return "", false
	}
	return block.ChoiceLabel(vars, b.Opt), true
}

// message resolves a block's message dropdown
func message(a Actor, b *block.Block) (string, bool) {
	msgs := a.Choices(block.SourceMessages)
	if len(msgs) == 0 {
		return "", false
	}
	return strings.TrimSpace(block.ChoiceLabel(msgs, b.Opt)), true
}
