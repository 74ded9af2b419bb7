package geometry

import (
	"image"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/constants"
)

// Placed is one element positioned in absolute workspace coordinates
type Placed struct {
	Element block.Element
	Rect    image.Rectangle
	Text    string   // label, literal or dropdown text
	Plugged block.ID // block occupying the element's slot
}

// Layout is the complete left-to-right arrangement of one block
type Layout struct {
	Block    *block.Block
	Def      *block.Def
	Box      image.Rectangle
	Header   image.Rectangle
	Elements []Placed
	Mouths   [2]image.Rectangle
	Else     image.Rectangle
}

// Layout arranges b's elements at b's current position. A block with an
// unknown kind yields an empty layout whose Box is empty.
func (o *Oracle) Layout(g *block.Graph, b *block.Block) Layout {
	l := Layout{Block: b}
	d := b.Def()
	if d == nil {
		return l
	}
	l.Def = d
	l.Box = o.Box(g, b)

	w, hh := o.headerSize(g, b, d)
	l.Header = image.Rect(b.X, b.Y, b.X+w, b.Y+hh)

	x := b.X + constants.BlockPadX
	for _, e := range d.Elements {
		ew, eh, text, plugged := o.element(g, b, e)
		y := b.Y + (hh-eh)/2
		l.Elements = append(l.Elements, Placed{
			Element: e,
			Rect:    image.Rect(x, y, x+ew, y+eh),
			Text:    text,
			Plugged: plugged,
		})
		x += ew + constants.ElementGap
	}

	if n := d.Bodies(); n > 0 {
		top := b.Y + hh
		m1 := o.mouthHeight(g, b.Child)
		l.Mouths[0] = image.Rect(b.X+constants.BodyIndent, top, l.Box.Max.X, top+m1)
		if n == 2 {
			elseTop := top + m1
			l.Else = image.Rect(b.X, elseTop, l.Box.Max.X, elseTop+constants.ElseRowHeight)
			m2 := o.mouthHeight(g, b.Child2)
			l.Mouths[1] = image.Rect(b.X+constants.BodyIndent, l.Else.Max.Y, l.Box.Max.X, l.Else.Max.Y+m2)
		}
	}
	return l
}

// MouthOrigin returns where the first block of body n (0 or 1) sits
func (l Layout) MouthOrigin(n int) image.Point {
	return l.Mouths[n].Min
}

// SlotRect returns the rectangle of the element bound to slot s
func (l Layout) SlotRect(s block.Slot) (image.Rectangle, bool) {
	for _, p := range l.Elements {
		if p.Element.Slot == s && s != block.SlotNone {
			return p.Rect, true
		}
	}
	return image.Rectangle{}, false
}

// headerSize measures the header row: width includes padding, height grows
// to fit the tallest plugged reporter
func (o *Oracle) headerSize(g *block.Graph, b *block.Block, d *block.Def) (int, int) {
	base := constants.StackRowHeight
	if d.Class() != block.ClassStack {
		base = constants.ReporterHeight
	}
	inset := (base - constants.FieldHeight) / 2

	w := constants.BlockPadX
	tallest := 0
	for i, e := range d.Elements {
		ew, eh, _, _ := o.element(g, b, e)
		if i > 0 {
			w += constants.ElementGap
		}
		w += ew
		tallest = max(tallest, eh)
	}
	w += constants.BlockPadX

	if d.Class() == block.ClassStack {
		w = max(w, constants.StackMinWidth)
	}
	return w, max(base, tallest+2*inset)
}

// element measures one element and resolves its display text and occupant
func (o *Oracle) element(g *block.Graph, b *block.Block, e block.Element) (w, h int, text string, plugged block.ID) {
	if e.Slot != block.SlotNone {
		if child := g.Get(b.Link(e.Slot)); child != nil {
			sz := o.Size(g, child.ID)
			return sz.X, sz.Y, "", child.ID
		}
	}

	switch e.Kind {
	case block.ElemLabel:
		return o.measure.MeasureLabel(e.Label), constants.FieldHeight, e.Label, block.None

	case block.ElemNumber, block.ElemText:
		text = o.literal(b, e.Field)
		w = max(constants.CapsuleMinWidth, o.measure.MeasureLabel(text)+2*constants.CapsulePadX)
		return w, constants.FieldHeight, text, block.None

	case block.ElemDropdown:
		text = block.ChoiceLabel(o.choiceList(e.Source), b.Opt)
		w = o.measure.MeasureLabel(text) + constants.CapsulePadX + constants.DropdownCaretWidth
		return w, constants.FieldHeight, text, block.None

	case block.ElemBoolean:
		return constants.BooleanSlotWidth, constants.FieldHeight, "", block.None

	case block.ElemColor:
		return constants.ColorSwatchWidth, constants.FieldHeight, "", block.None
	}
	return 0, 0, "", block.None
}

func (o *Oracle) literal(b *block.Block, f block.Field) string {
	if b.ID == o.editID && f == o.editField {
		return o.editText
	}
	if f.IsNumeric() {
		return block.FormatNumber(b.Number(f))
	}
	return b.TextField(f)
}

func (o *Oracle) choiceList(src block.ChoiceSource) []string {
	if o.choices == nil {
		return nil
	}
	return o.choices.Choices(src)
}
