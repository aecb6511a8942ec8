package audio

import (
	"time"

	"github.com/ReeCocho/Snek/ecs"
	"go.uber.org/zap"
)

// Beeper plays a tone on the tick after Trigger is called. The Player is taken from the
// scene's resources; without one the component stays silent.
type Beeper struct {
	ecs.ComponentBase

	Freq     float64
	Duration time.Duration

	player  *Player
	pending bool
}

func (b *Beeper) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseBegin, ecs.PhaseTick)
}

func (b *Beeper) OnBegin() {
	b.Freq = 440
	b.Duration = 80 * time.Millisecond
	b.player, _ = ecs.Resource[*Player](b.Scene())
}

// Trigger queues a tone. Triggers between two ticks collapse into one.
func (b *Beeper) Trigger() {
	b.pending = true
}

// Pending reports whether a triggered tone has not been played yet.
func (b *Beeper) Pending() bool {
	return b.pending
}

func (b *Beeper) OnTick(float32) {
	if !b.pending {
		return
	}
	b.pending = false
	if b.player == nil {
		return
	}
	if err := b.player.Beep(b.Freq, b.Duration); err != nil {
		b.player.log.Warn("beep failed", zap.Stringer("entity", b.Entity()), zap.Error(err))
	}
}
