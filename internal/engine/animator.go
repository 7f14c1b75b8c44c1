package engine

import (
	"log/slog"
	"math"

	"github.com/tartampluch/go-yearprogress/internal/config"
)

// FrameScheduler queues a callback for the next visual refresh.
type FrameScheduler interface {
	ScheduleNextFrame(fn func())
}

// BarElement is the progress bar whose width the animator drives.
type BarElement interface {
	// BarWidth returns the displayed width in percent, false when unset.
	BarWidth() (float64, bool)
	SetBarWidth(percent float64)
}

// AnimationState is the eased position of one bar.
type AnimationState struct {
	Current float64
	Target  float64
	Settled bool
}

// Step moves Current a tenth of the way to Target and returns the width to
// display, capped at 100.
func (s *AnimationState) Step() float64 {
	s.Current += (s.Target - s.Current) * config.EaseFactor
	s.Settled = math.Abs(s.Current-s.Target) <= config.SettleThreshold
	return math.Min(s.Current, config.MaxBarWidth)
}

// ProgressBarAnimator eases a bar toward a target. A new target while a run
// is in flight retargets that run; there is never more than one pending
// frame. Not safe for concurrent use: call it from the UI goroutine.
type ProgressBarAnimator struct {
	bar       BarElement
	scheduler FrameScheduler
	state     AnimationState
	running   bool
	frames    int
}

// NewProgressBarAnimator binds an animator to one bar.
func NewProgressBarAnimator(bar BarElement, scheduler FrameScheduler) *ProgressBarAnimator {
	return &ProgressBarAnimator{
		bar:       bar,
		scheduler: scheduler,
		state:     AnimationState{Settled: true},
	}
}

// AnimateTo starts or retargets the animation.
func (a *ProgressBarAnimator) AnimateTo(target float64) {
	a.state.Target = target

	if a.running {
		slog.Debug(config.MsgAnimRetarget,
			config.LogKeyComponent, config.CompAnimator,
			config.LogKeyTarget, target)
		return
	}

	start, ok := a.bar.BarWidth()
	if !ok || math.IsNaN(start) {
		start = 0
	}
	a.state.Current = start
	a.state.Settled = false
	a.running = true
	a.frames = 0

	slog.Debug(config.MsgAnimStart,
		config.LogKeyComponent, config.CompAnimator,
		config.LogKeyTarget, target,
		config.LogKeyValue, start)

	a.scheduler.ScheduleNextFrame(a.frame)
}

// State returns a copy of the current animation state.
func (a *ProgressBarAnimator) State() AnimationState {
	return a.state
}

// Running reports whether a frame is scheduled.
func (a *ProgressBarAnimator) Running() bool {
	return a.running
}

func (a *ProgressBarAnimator) frame() {
	a.frames++
	a.bar.SetBarWidth(a.state.Step())

	if !a.state.Settled {
		a.scheduler.ScheduleNextFrame(a.frame)
		return
	}

	a.running = false
	slog.Debug(config.MsgAnimSettled,
		config.LogKeyComponent, config.CompAnimator,
		config.LogKeyTarget, a.state.Target,
		config.LogKeyFrames, a.frames)
}

// QueueScheduler collects frames until Drain runs them. It stands in for a
// display refresh loop where none exists (HTTP rendering, tests).
type QueueScheduler struct {
	queue []func()
}

// ScheduleNextFrame appends fn to the queue.
func (q *QueueScheduler) ScheduleNextFrame(fn func()) {
	q.queue = append(q.queue, fn)
}

// Pending returns the number of queued frames.
func (q *QueueScheduler) Pending() int {
	return len(q.queue)
}

// RunFrame runs the frames queued so far, once. Frames scheduled while they
// run wait for the next call. It returns how many frames ran.
func (q *QueueScheduler) RunFrame() int {
	batch := q.queue
	q.queue = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Drain runs frames until the queue is empty or limit frames have run.
// A limit of zero or less means no limit.
func (q *QueueScheduler) Drain(limit int) int {
	ran := 0
	for len(q.queue) > 0 && (limit <= 0 || ran < limit) {
		ran += q.RunFrame()
	}
	return ran
}
