package interp

import (
	"math"
	"time"

	"github.com/lixenwraith/blockstage/block"
)

// exec runs one stack block and moves the cursor. It reports true when the
// thread yields for the rest of the tick.
func (i *Interpreter) exec(t *Thread, b *block.Block, now time.Time) bool {
	a := t.Actor
	sp := a.Sprite()
	st := i.stage
	num := func(n int) float64 { return i.argAt(a, b, n, 0).Number() }
	t.Cursor = b.Next

	switch b.Kind {
	case block.KindMotion:
		switch b.Subtype {
		case block.MotionMove:
			st.Steps(sp, num(0))
		case block.MotionTurnRight:
			sp.Turn(num(0))
		case block.MotionTurnLeft:
			sp.Turn(-num(0))
		case block.MotionGoTo:
			st.MoveSprite(sp, num(0), num(1))
		case block.MotionPointDirection:
			sp.PointIn(num(0))
		case block.MotionChangeX:
			st.MoveSprite(sp, sp.X+num(0), sp.Y)
		case block.MotionSetX:
			st.MoveSprite(sp, num(0), sp.Y)
		case block.MotionChangeY:
			st.MoveSprite(sp, sp.X, sp.Y+num(0))
		case block.MotionSetY:
			st.MoveSprite(sp, sp.X, num(0))
		case block.MotionBounce:
			st.Bounce(sp)
		}

	case block.KindLooks:
		switch b.Subtype {
		case block.LooksSayFor:
			text := i.argAt(a, b, 0, 0).String()
			until := now.Add(seconds(num(1)))
			sp.Say(text, until)
			return t.sleep(until)
		case block.LooksSay:
			sp.Say(i.argAt(a, b, 0, 0).String(), time.Time{})
		case block.LooksSwitchCostume:
			n := len(a.Choices(block.SourceCostumes))
			sp.SetCostume(block.ClampOpt(b.Opt, n), n)
		case block.LooksNextCostume:
			sp.SetCostume(sp.Costume+1, len(a.Choices(block.SourceCostumes)))
		case block.LooksChangeSize:
			sp.SetSize(sp.Size + num(0))
		case block.LooksSetSize:
			sp.SetSize(num(0))
		case block.LooksShow:
			sp.Visible = true
		case block.LooksHide:
			sp.Visible = false
		}

	case block.KindSound:
		switch b.Subtype {
		case block.SoundPlayUntilDone:
			if i.sound != nil {
				i.sound.Play(block.ChoiceLabel(block.SoundNames, b.Opt), sp.Volume)
				t.Wait = WaitSound
				return true
			}
		case block.SoundStart:
			if i.sound != nil {
				i.sound.Play(block.ChoiceLabel(block.SoundNames, b.Opt), sp.Volume)
			}
		case block.SoundStopAll:
			if i.sound != nil {
				i.sound.StopAll()
			}
		case block.SoundChangeVolume:
			sp.SetVolume(sp.Volume + num(0))
		case block.SoundSetVolume:
			sp.SetVolume(num(0))
		}

	case block.KindEvents:
		if b.Subtype == block.EventsBroadcast {
			if msg, ok := message(a, b); ok {
				i.send(a, msg)
			}
		}

	case block.KindControl:
		return i.control(t, b, now, num)

	case block.KindSensing:
		if b.Subtype == block.SensingResetTimer {
			st.ResetTimer()
		}

	case block.KindVariables:
		name, ok := variable(a, b)
		if !ok {
			break
		}
		switch b.Subtype {
		case block.VarSet:
			st.SetVar(name, i.argAt(a, b, 0, 0).String())
		case block.VarChange:
			cur := Str(st.Var(name)).Number()
			st.SetVar(name, block.FormatNumber(cur+num(0)))
		}

	case block.KindPen:
		switch b.Subtype {
		case block.PenClear:
			st.ClearPen()
		case block.PenDown:
			sp.PenDown = true
		case block.PenUp:
			sp.PenDown = false
		case block.PenSetColor:
			sp.PenColor = [3]float64{b.Number(block.FieldD), b.Number(block.FieldE), b.Number(block.FieldF)}
		case block.PenChangeSize:
			sp.PenSize = math.Max(1, sp.PenSize+num(0))
		case block.PenSetSize:
			sp.PenSize = math.Max(1, num(0))
		}
	}
	return false
}

func (i *Interpreter) control(t *Thread, b *block.Block, now time.Time, num func(int) float64) bool {
	a := t.Actor
	switch b.Subtype {
	case block.ControlWait:
		return t.sleep(now.Add(seconds(num(0))))

	case block.ControlRepeat:
		n := int(math.Round(num(0)))
		if n > 0 && b.Child != block.None {
			t.enter(frameRepeat, b, b.Child, n)
		}

	case block.ControlForever:
		if b.Child == block.None {
			t.Cursor = b.ID
			t.Wait = WaitFrame
			return true
		}
		t.enter(frameForever, b, b.Child, 0)

	case block.ControlIf:
		if i.condition(a, b.Condition) && b.Child != block.None {
			t.enter(frameIf, b, b.Child, 0)
		}

	case block.ControlIfElse:
		body := b.Child2
		if i.condition(a, b.Condition) {
			body = b.Child
		}
		if body != block.None {
			t.enter(frameIf, b, body, 0)
		}

	case block.ControlWaitUntil:
		if !i.condition(a, b.Condition) {
			t.Cursor = b.ID
			t.until = b.ID
			t.Wait = WaitUntil
			return true
		}

	case block.ControlRepeatUntil:
		if i.condition(a, b.Condition) {
			break
		}
		if b.Child == block.None {
			t.Cursor = b.ID
			t.Wait = WaitFrame
			return true
		}
		t.enter(frameUntil, b, b.Child, 0)

	case block.ControlStopAll:
		i.StopAll()
		return true
	}
	return false
}

// send delivers a script broadcast to every actor and the outbound hook
func (i *Interpreter) send(from Actor, msg string) {
	actors := []Actor{from}
	if i.roster != nil {
		actors = i.roster()
	}
	for _, a := range actors {
		i.Broadcast(a, msg)
	}
	if i.OnBroadcast != nil {
		i.OnBroadcast(msg)
	}
}

// sleep parks the thread until at; the cursor already points past the block
func (t *Thread) sleep(at time.Time) bool {
	t.ResumeAt = at
	t.Wait = WaitTimer
	return true
}

func seconds(s float64) time.Duration {
	if math.IsNaN(s) || s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
