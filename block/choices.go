package block

// ChoiceSource names the list a dropdown element selects from
type ChoiceSource uint8

const (
	SourceNone ChoiceSource = iota
	SourceKeys
	SourceSounds
	SourceCostumes
	SourceMessages
	SourceVariables
)

// Choices resolves the current option list of a source. Costumes, messages
// and variables live in the project, so callers supply them.
type Choices interface {
	Choices(src ChoiceSource) []string
}

// KeyNames is the fixed key list of key hats and key sensing
var KeyNames = []string{
	"space", "up arrow", "down arrow", "left arrow", "right arrow", "any",
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
}

// KeyAny is the index of the wildcard key
const KeyAny = 5

// SoundNames is the built-in synthesized sound library
var SoundNames = []string{"pop", "bell", "whoosh", "coin", "buzz", "drum"}

// KeyIndex returns the index of a key name, -1 when unknown
func KeyIndex(name string) int {
	for i, n := range KeyNames {
		if n == name {
			return i
		}
	}
	return -1
}

// ClampOpt returns opt when it indexes a list of length n, otherwise 0.
// Stored indices are never rewritten; every reader clamps.
func ClampOpt(opt, n int) int {
	if opt < 0 || opt >= n {
		return 0
	}
	return opt
}

// ChoiceLabel returns the label of opt in list, falling back to the first
// entry, or "?" for an empty list
func ChoiceLabel(list []string, opt int) string {
	if len(list) == 0 {
		return "?"
	}
	return list[ClampOpt(opt, len(list))]
}

// StaticChoices serves the fixed sources and delegates the rest
type StaticChoices struct {
	Costumes  []string
	Messages  []string
	Variables []string
}

// Choices implements Choices
func (s StaticChoices) Choices(src ChoiceSource) []string {
	switch src {
	case SourceKeys:
		return KeyNames
	case SourceSounds:
		return SoundNames
	case SourceCostumes:
		return s.Costumes
	case SourceMessages:
		return s.Messages
	case SourceVariables:
		return s.Variables
	}
	return nil
}

// Swatches is the cycle a color element steps through on click
var Swatches = [][3]float64{
	{0, 96, 255},
	{230, 50, 50},
	{40, 170, 70},
	{250, 190, 0},
	{150, 60, 220},
	{0, 0, 0},
	{255, 255, 255},
}

// NextSwatch returns the swatch after the given color. A color outside the
// cycle restarts it.
func NextSwatch(rgb [3]float64) [3]float64 {
	for i, s := range Swatches {
		if s == rgb {
			return Swatches[(i+1)%len(Swatches)]
		}
	}
	return Swatches[0]
}
