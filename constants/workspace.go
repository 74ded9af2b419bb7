package constants

// Block Geometry (workspace units, 8 units per terminal column, 16 per row)
const (
	// CellWidth is the number of workspace units per terminal column
	CellWidth = 8

	// CellHeight is the number of workspace units per terminal row
	CellHeight = 16

	// FieldHeight is the height of a label, value capsule or dropdown
	FieldHeight = 16

	// StackRowHeight is the minimum header height of a stack block
	StackRowHeight = 48

	// ReporterHeight is the minimum height of a reporter or boolean block
	ReporterHeight = 32

	// BlockPadX is the horizontal padding between a block edge and its first/last element
	BlockPadX = 8

	// ElementGap is the horizontal gap between adjacent elements
	ElementGap = 8

	// CapsulePadX is the padding inside a value capsule around its text
	CapsulePadX = 8

	// CapsuleMinWidth is the minimum width of an empty value capsule
	CapsuleMinWidth = 24

	// DropdownCaretWidth is the width reserved for the dropdown caret
	DropdownCaretWidth = 16

	// BooleanSlotWidth is the width of an empty boolean notch
	BooleanSlotWidth = 32

	// ColorSwatchWidth is the width of a color swatch element
	ColorSwatchWidth = 24

	// StackMinWidth is the minimum width of any stack block
	StackMinWidth = 96

	// BodyIndent is the horizontal offset of a nested body inside a C or E block
	BodyIndent = 16

	// EmptyBodyHeight is the height of an empty C/E mouth
	EmptyBodyHeight = 32

	// ArmHeight is the height of the bottom arm of a C or E block
	ArmHeight = 16

	// ElseRowHeight is the height of the "else" row separating E block mouths
	ElseRowHeight = 32

	// StackOverlap is the vertical overlap between consecutive stacked blocks
	StackOverlap = 8

	// SlotBand is the height of the before/after hit band at a stack block's top/bottom edge
	SlotBand = 8
)

// Snapping and Dropping
const (
	// SnapThreshold is the maximum per-axis distance for a stack or boolean snap
	SnapThreshold = 32

	// EvictOffsetX is the horizontal offset of an evicted block from the drop point
	EvictOffsetX = 24

	// EvictOffsetY is the vertical offset of an evicted block from the drop point
	EvictOffsetY = 48

	// ClickSlop is the pointer travel under which a press-release counts as a click
	ClickSlop = 2
)
