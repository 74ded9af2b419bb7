package render

import (
	"github.com/lixenwraith/blockstage/block"
)

// UI colors
var (
	DefaultBgRGB = RGB{26, 27, 38} // Tokyo Night background

	RgbWorkspaceBg  = RGB{36, 40, 59}
	RgbWorkspaceDot = RGB{52, 57, 82}
	RgbPaletteBg    = RGB{22, 22, 30}
	RgbToolbarBg    = RGB{65, 72, 104}
	RgbToolbarText  = RGB{192, 202, 245}
	RgbStatusText   = RGB{169, 177, 214}
	RgbStageBg      = RGB{245, 245, 240}
	RgbStageBorder  = RGB{120, 124, 153}
	RgbBubbleBg     = RGB{255, 255, 255}
	RgbBubbleText   = RGB{20, 20, 20}
	RgbCapsuleBg    = RGB{240, 240, 240}
	RgbCapsuleText  = RGB{30, 30, 30}
	RgbSnapMarker   = RGB{255, 255, 255}
	RgbDiscardTint  = RGB{220, 50, 50}
	RgbFocusCursor  = RGB{255, 165, 0}
	RgbButtonActive = RGB{158, 206, 106}
	RgbButtonStop   = RGB{247, 118, 142}
)

// categoryColors follow the familiar block palette
var categoryColors = [...]RGB{
	block.KindMotion:    Hex("#4c97ff"),
	block.KindLooks:     Hex("#9966ff"),
	block.KindSound:     Hex("#cf63cf"),
	block.KindEvents:    Hex("#ffbf00"),
	block.KindControl:   Hex("#ffab19"),
	block.KindSensing:   Hex("#5cb1d6"),
	block.KindOperators: Hex("#59c059"),
	block.KindVariables: Hex("#ff8c1a"),
	block.KindPen:       Hex("#0fbd8c"),
}

// CategoryColor returns the fill color of a block kind
func CategoryColor(k block.Kind) RGB {
	if int(k) < len(categoryColors) {
		return categoryColors[k]
	}
	return RGB{128, 128, 128}
}

// SlotColor is the darker inset used for empty boolean notches and dropdowns
func SlotColor(k block.Kind) RGB {
	return Darken(CategoryColor(k), 0.3)
}

// spriteColors distinguish actors on the stage by roster index
var spriteColors = []RGB{
	Hex("#e0af68"), Hex("#7aa2f7"), Hex("#9ece6a"), Hex("#f7768e"),
	Hex("#bb9af7"), Hex("#2ac3de"),
}

// SpriteColor returns the glyph color of the i-th actor
func SpriteColor(i int) RGB {
	if i < 0 {
		i = -i
	}
	return spriteColors[i%len(spriteColors)]
}
