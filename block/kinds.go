package block

// Motion subtypes
const (
	MotionMove Subtype = iota
	MotionTurnRight
	MotionTurnLeft
	MotionGoTo
	MotionPointDirection
	MotionChangeX
	MotionSetX
	MotionChangeY
	MotionSetY
	MotionBounce
	MotionXPosition
	MotionYPosition
	MotionDirection
)

// Looks subtypes
const (
	LooksSayFor Subtype = iota
	LooksSay
	LooksSwitchCostume
	LooksNextCostume
	LooksChangeSize
	LooksSetSize
	LooksShow
	LooksHide
	LooksCostumeNumber
	LooksSize
)

// Sound subtypes
const (
	SoundPlayUntilDone Subtype = iota
	SoundStart
	SoundStopAll
	SoundChangeVolume
	SoundSetVolume
	SoundVolume
)

// Events subtypes
const (
	EventsFlagClicked Subtype = iota
	EventsKeyPressed
	EventsSpriteClicked
	EventsReceive
	EventsBroadcast
)

// Control subtypes
const (
	ControlWait Subtype = iota
	ControlRepeat
	ControlForever
	ControlIf
	ControlIfElse
	ControlWaitUntil
	ControlRepeatUntil
	ControlStopAll
)

// Sensing subtypes
const (
	SensingKeyPressed Subtype = iota
	SensingMouseDown
	SensingMouseX
	SensingMouseY
	SensingTimer
	SensingResetTimer
	SensingTouchingEdge
)

// Operators subtypes
const (
	OpAdd Subtype = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpRandom
	OpLess
	OpEqual
	OpGreater
	OpAnd
	OpOr
	OpNot
	OpJoin
	OpLetterOf
	OpLength
	OpMod
	OpRound
)

// Variables subtypes
const (
	VarGet Subtype = iota
	VarSet
	VarChange
)

// Pen subtypes
const (
	PenClear Subtype = iota
	PenDown
	PenUp
	PenSetColor
	PenChangeSize
	PenSetSize
)

func init() {
	register(
		// Motion
		&Def{Kind: KindMotion, Subtype: MotionMove, Name: "move", Shape: ShapeStack,
			Elements: []Element{lbl("move"), num(FieldA, SlotArg0), lbl("steps")},
			Defaults: Defaults{A: 10}},
		&Def{Kind: KindMotion, Subtype: MotionTurnRight, Name: "turn_right", Shape: ShapeStack,
			Elements: []Element{lbl("turn ↻"), num(FieldA, SlotArg0), lbl("degrees")},
			Defaults: Defaults{A: 15}},
		&Def{Kind: KindMotion, Subtype: MotionTurnLeft, Name: "turn_left", Shape: ShapeStack,
			Elements: []Element{lbl("turn ↺"), num(FieldA, SlotArg0), lbl("degrees")},
			Defaults: Defaults{A: 15}},
		&Def{Kind: KindMotion, Subtype: MotionGoTo, Name: "go_to", Shape: ShapeStack,
			Elements: []Element{lbl("go to x:"), num(FieldA, SlotArg0), lbl("y:"), num(FieldB, SlotArg1)}},
		&Def{Kind: KindMotion, Subtype: MotionPointDirection, Name: "point_direction", Shape: ShapeStack,
			Elements: []Element{lbl("point in direction"), num(FieldA, SlotArg0)},
			Defaults: Defaults{A: 90}},
		&Def{Kind: KindMotion, Subtype: MotionChangeX, Name: "change_x", Shape: ShapeStack,
			Elements: []Element{lbl("change x by"), num(FieldA, SlotArg0)},
			Defaults: Defaults{A: 10}},
		&Def{Kind: KindMotion, Subtype: MotionSetX, Name: "set_x", Shape: ShapeStack,
			Elements: []Element{lbl("set x to"), num(FieldA, SlotArg0)}},
		&Def{Kind: KindMotion, Subtype: MotionChangeY, Name: "change_y", Shape: ShapeStack,
			Elements: []Element{lbl("change y by"), num(FieldA, SlotArg0)},
			Defaults: Defaults{A: 10}},
		&Def{Kind: KindMotion, Subtype: MotionSetY, Name: "set_y", Shape: ShapeStack,
			Elements: []Element{lbl("set y to"), num(FieldA, SlotArg0)}},
		&Def{Kind: KindMotion, Subtype: MotionBounce, Name: "bounce", Shape: ShapeStack,
			Elements: []Element{lbl("if on edge, bounce")}},
		&Def{Kind: KindMotion, Subtype: MotionXPosition, Name: "x_position", Shape: ShapeReporter,
			Elements: []Element{lbl("x position")}},
		&Def{Kind: KindMotion, Subtype: MotionYPosition, Name: "y_position", Shape: ShapeReporter,
			Elements: []Element{lbl("y position")}},
		&Def{Kind: KindMotion, Subtype: MotionDirection, Name: "direction", Shape: ShapeReporter,
			Elements: []Element{lbl("direction")}},

		// Looks
		&Def{Kind: KindLooks, Subtype: LooksSayFor, Name: "say_for", Shape: ShapeStack,
			Elements: []Element{lbl("say"), txt(FieldText, SlotArg0), lbl("for"), num(FieldA, SlotArg1), lbl("secs")},
			Defaults: Defaults{Text: "Hello!", A: 2}},
		&Def{Kind: KindLooks, Subtype: LooksSay, Name: "say", Shape: ShapeStack,
			Elements: []Element{lbl("say"), txt(FieldText, SlotArg0)},
			Defaults: Defaults{Text: "Hello!"}},
		&Def{Kind: KindLooks, Subtype: LooksSwitchCostume, Name: "switch_costume", Shape: ShapeStack,
			Elements: []Element{lbl("switch costume to"), drop(SourceCostumes)}},
		&Def{Kind: KindLooks, Subtype: LooksNextCostume, Name: "next_costume", Shape: ShapeStack,
			Elements: []Element{lbl("next costume")}},
		&Def{Kind: KindLooks, Subtype: LooksChangeSize, Name: "change_size", Shape: ShapeStack,
			Elements: []Element{lbl("change size by"), num(FieldA, SlotArg0)},
			Defaults: Defaults{A: 10}},
		&Def{Kind: KindLooks, Subtype: LooksSetSize, Name: "set_size", Shape: ShapeStack,
			Elements: []Element{lbl("set size to"), num(FieldA, SlotArg0), lbl("%")},
			Defaults: Defaults{A: 100}},
		&Def{Kind: KindLooks, Subtype: LooksShow, Name: "show", Shape: ShapeStack,
			Elements: []Element{lbl("show")}},
		&Def{Kind: KindLooks, Subtype: LooksHide, Name: "hide", Shape: ShapeStack,
			Elements: []Element{lbl("hide")}},
		&Def{Kind: KindLooks, Subtype: LooksCostumeNumber, Name: "costume_number", Shape: ShapeReporter,
			Elements: []Element{lbl("costume #")}},
		&Def{Kind: KindLooks, Subtype: LooksSize, Name: "size", Shape: ShapeReporter,
			Elements: []Element{lbl("size")}},

		// Sound
		&Def{Kind: KindSound, Subtype: SoundPlayUntilDone, Name: "play_until_done", Shape: ShapeStack,
			Elements: []Element{lbl("play sound"), drop(SourceSounds), lbl("until done")}},
		&Def{Kind: KindSound, Subtype: SoundStart, Name: "start_sound", Shape: ShapeStack,
			Elements: []Element{lbl("start sound"), drop(SourceSounds)}},
		&Def{Kind: KindSound, Subtype: SoundStopAll, Name: "stop_all_sounds", Shape: ShapeStack,
			Elements: []Element{lbl("stop all sounds")}},
		&Def{Kind: KindSound, Subtype: SoundChangeVolume, Name: "change_volume", Shape: ShapeStack,
			Elements: []Element{lbl("change volume by"), num(FieldA, SlotArg0)},
			Defaults: Defaults{A: -10}},
		&Def{Kind: KindSound, Subtype: SoundSetVolume, Name: "set_volume", Shape: ShapeStack,
			Elements: []Element{lbl("set volume to"), num(FieldA, SlotArg0), lbl("%")},
			Defaults: Defaults{A: 100}},
		&Def{Kind: KindSound, Subtype: SoundVolume, Name: "volume", Shape: ShapeReporter,
			Elements: []Element{lbl("volume")}},

		// Events
		&Def{Kind: KindEvents, Subtype: EventsFlagClicked, Name: "when_flag", Shape: ShapeHat,
			Elements: []Element{lbl("when ⚑ clicked")}},
		&Def{Kind: KindEvents, Subtype: EventsKeyPressed, Name: "when_key", Shape: ShapeHat,
			Elements: []Element{lbl("when"), drop(SourceKeys), lbl("key pressed")}},
		&Def{Kind: KindEvents, Subtype: EventsSpriteClicked, Name: "when_clicked", Shape: ShapeHat,
			Elements: []Element{lbl("when this sprite clicked")}},
		&Def{Kind: KindEvents, Subtype: EventsReceive, Name: "when_receive", Shape: ShapeHat,
			Elements: []Element{lbl("when I receive"), drop(SourceMessages)}},
		&Def{Kind: KindEvents, Subtype: EventsBroadcast, Name: "broadcast", Shape: ShapeStack,
			Elements: []Element{lbl("broadcast"), drop(SourceMessages)}},

		// Control
		&Def{Kind: KindControl, Subtype: ControlWait, Name: "wait", Shape: ShapeStack,
			Elements: []Element{lbl("wait"), num(FieldA, SlotArg0), lbl("seconds")},
			Defaults: Defaults{A: 1}},
		&Def{Kind: KindControl, Subtype: ControlRepeat, Name: "repeat", Shape: ShapeC,
			Elements: []Element{lbl("repeat"), num(FieldA, SlotArg0)},
			Defaults: Defaults{A: 10}},
		&Def{Kind: KindControl, Subtype: ControlForever, Name: "forever", Shape: ShapeC, Cap: true,
			Elements: []Element{lbl("forever")}},
		&Def{Kind: KindControl, Subtype: ControlIf, Name: "if", Shape: ShapeC,
			Elements: []Element{lbl("if"), cond(SlotCondition), lbl("then")}},
		&Def{Kind: KindControl, Subtype: ControlIfElse, Name: "if_else", Shape: ShapeE,
			Elements: []Element{lbl("if"), cond(SlotCondition), lbl("then")}},
		&Def{Kind: KindControl, Subtype: ControlWaitUntil, Name: "wait_until", Shape: ShapeStack,
			Elements: []Element{lbl("wait until"), cond(SlotCondition)}},
		&Def{Kind: KindControl, Subtype: ControlRepeatUntil, Name: "repeat_until", Shape: ShapeC,
			Elements: []Element{lbl("repeat until"), cond(SlotCondition)}},
		&Def{Kind: KindControl, Subtype: ControlStopAll, Name: "stop_all", Shape: ShapeStack, Cap: true,
			Elements: []Element{lbl("stop all")}},

		// Sensing
		&Def{Kind: KindSensing, Subtype: SensingKeyPressed, Name: "key_pressed", Shape: ShapeBoolean,
			Elements: []Element{lbl("key"), drop(SourceKeys), lbl("pressed?")}},
		&Def{Kind: KindSensing, Subtype: SensingMouseDown, Name: "mouse_down", Shape: ShapeBoolean,
			Elements: []Element{lbl("mouse down?")}},
		&Def{Kind: KindSensing, Subtype: SensingMouseX, Name: "mouse_x", Shape: ShapeReporter,
			Elements: []Element{lbl("mouse x")}},
		&Def{Kind: KindSensing, Subtype: SensingMouseY, Name: "mouse_y", Shape: ShapeReporter,
			Elements: []Element{lbl("mouse y")}},
		&Def{Kind: KindSensing, Subtype: SensingTimer, Name: "timer", Shape: ShapeReporter,
			Elements: []Element{lbl("timer")}},
		&Def{Kind: KindSensing, Subtype: SensingResetTimer, Name: "reset_timer", Shape: ShapeStack,
			Elements: []Element{lbl("reset timer")}},
		&Def{Kind: KindSensing, Subtype: SensingTouchingEdge, Name: "touching_edge", Shape: ShapeBoolean,
			Elements: []Element{lbl("touching edge?")}},

		// Operators
		&Def{Kind: KindOperators, Subtype: OpAdd, Name: "add", Shape: ShapeReporter,
			Elements: []Element{num(FieldA, SlotArg0), lbl("+"), num(FieldB, SlotArg1)}},
		&Def{Kind: KindOperators, Subtype: OpSubtract, Name: "subtract", Shape: ShapeReporter,
			Elements: []Element{num(FieldA, SlotArg0), lbl("-"), num(FieldB, SlotArg1)}},
		&Def{Kind: KindOperators, Subtype: OpMultiply, Name: "multiply", Shape: ShapeReporter,
			Elements: []Element{num(FieldA, SlotArg0), lbl("*"), num(FieldB, SlotArg1)}},
		&Def{Kind: KindOperators, Subtype: OpDivide, Name: "divide", Shape: ShapeReporter,
			Elements: []Element{num(FieldA, SlotArg0), lbl("/"), num(FieldB, SlotArg1)}},
		&Def{Kind: KindOperators, Subtype: OpRandom, Name: "random", Shape: ShapeReporter,
			Elements: []Element{lbl("pick random"), num(FieldA, SlotArg0), lbl("to"), num(FieldB, SlotArg1)},
			Defaults: Defaults{A: 1, B: 10}},
		&Def{Kind: KindOperators, Subtype: OpLess, Name: "less", Shape: ShapeBoolean,
			Elements: []Element{txt(FieldText, SlotArg0), lbl("<"), txt(FieldText2, SlotArg1)},
			Defaults: Defaults{Text2: "50"}},
		&Def{Kind: KindOperators, Subtype: OpEqual, Name: "equal", Shape: ShapeBoolean,
			Elements: []Element{txt(FieldText, SlotArg0), lbl("="), txt(FieldText2, SlotArg1)},
			Defaults: Defaults{Text2: "50"}},
		&Def{Kind: KindOperators, Subtype: OpGreater, Name: "greater", Shape: ShapeBoolean,
			Elements: []Element{txt(FieldText, SlotArg0), lbl(">"), txt(FieldText2, SlotArg1)},
			Defaults: Defaults{Text2: "50"}},
		&Def{Kind: KindOperators, Subtype: OpAnd, Name: "and", Shape: ShapeBoolean,
			Elements: []Element{cond(SlotArg0), lbl("and"), cond(SlotArg1)}},
		&Def{Kind: KindOperators, Subtype: OpOr, Name: "or", Shape: ShapeBoolean,
			Elements: []Element{cond(SlotArg0), lbl("or"), cond(SlotArg1)}},
		&Def{Kind: KindOperators, Subtype: OpNot, Name: "not", Shape: ShapeBoolean,
			Elements: []Element{lbl("not"), cond(SlotArg0)}},
		&Def{Kind: KindOperators, Subtype: OpJoin, Name: "join", Shape: ShapeReporter,
			Elements: []Element{lbl("join"), txt(FieldText, SlotArg0), txt(FieldText2, SlotArg1)},
			Defaults: Defaults{Text: "apple ", Text2: "banana"}},
		&Def{Kind: KindOperators, Subtype: OpLetterOf, Name: "letter_of", Shape: ShapeReporter,
			Elements: []Element{lbl("letter"), num(FieldA, SlotArg0), lbl("of"), txt(FieldText, SlotArg1)},
			Defaults: Defaults{A: 1, Text: "apple"}},
		&Def{Kind: KindOperators, Subtype: OpLength, Name: "length", Shape: ShapeReporter,
			Elements: []Element{lbl("length of"), txt(FieldText, SlotArg0)},
			Defaults: Defaults{Text: "apple"}},
		&Def{Kind: KindOperators, Subtype: OpMod, Name: "mod", Shape: ShapeReporter,
			Elements: []Element{num(FieldA, SlotArg0), lbl("mod"), num(FieldB, SlotArg1)}},
		&Def{Kind: KindOperators, Subtype: OpRound, Name: "round", Shape: ShapeReporter,
			Elements: []Element{lbl("round"), num(FieldA, SlotArg0)}},

		// Variables
		&Def{Kind: KindVariables, Subtype: VarGet, Name: "variable", Shape: ShapeReporter,
			Elements: []Element{drop(SourceVariables)}},
		&Def{Kind: KindVariables, Subtype: VarSet, Name: "set_variable", Shape: ShapeStack,
			Elements: []Element{lbl("set"), drop(SourceVariables), lbl("to"), txt(FieldText, SlotArg0)},
			Defaults: Defaults{Text: "0"}},
		&Def{Kind: KindVariables, Subtype: VarChange, Name: "change_variable", Shape: ShapeStack,
			Elements: []Element{lbl("change"), drop(SourceVariables), lbl("by"), num(FieldA, SlotArg0)},
			Defaults: Defaults{A: 1}},

		// Pen
		&Def{Kind: KindPen, Subtype: PenClear, Name: "clear", Shape: ShapeStack,
			Elements: []Element{lbl("erase all")}},
		&Def{Kind: KindPen, Subtype: PenDown, Name: "pen_down", Shape: ShapeStack,
			Elements: []Element{lbl("pen down")}},
		&Def{Kind: KindPen, Subtype: PenUp, Name: "pen_up", Shape: ShapeStack,
			Elements: []Element{lbl("pen up")}},
		&Def{Kind: KindPen, Subtype: PenSetColor, Name: "set_pen_color", Shape: ShapeStack,
			Elements: []Element{lbl("set pen color to"), swatch()},
			Defaults: Defaults{D: 0, E: 96, F: 255}},
		&Def{Kind: KindPen, Subtype: PenChangeSize, Name: "change_pen_size", Shape: ShapeStack,
			Elements: []Element{lbl("change pen size by"), num(FieldA, SlotArg0)},
			Defaults: Defaults{A: 1}},
		&Def{Kind: KindPen, Subtype: PenSetSize, Name: "set_pen_size", Shape: ShapeStack,
			Elements: []Element{lbl("set pen size to"), num(FieldA, SlotArg0)},
			Defaults: Defaults{A: 1}},
	)
}
