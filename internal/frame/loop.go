package frame

// Loop repeats a task once per frame while active. At most one frame is in
// flight: stopping does not cancel it, so the task runs once more after Stop
// and then stops rescheduling.
type Loop struct {
	sched   *Scheduler
	task    func()
	active  bool
	pending bool
	id      ID
	ticks   uint64
}

func NewLoop(s *Scheduler, task func()) *Loop {
	return &Loop{sched: s, task: task}
}

// Start marks the loop active and schedules the first frame unless one is
// already in flight.
func (l *Loop) Start() {
	l.active = true
	if !l.pending {
		l.pending = true
		l.id = l.sched.RequestFrame(l.run)
	}
}

// Stop marks the loop inactive. It takes effect at the next frame boundary.
func (l *Loop) Stop() {
	l.active = false
}

// Cancel stops the loop and drops the frame in flight, so the task does not
// run again.
func (l *Loop) Cancel() {
	l.active = false
	if l.pending {
		l.sched.CancelFrame(l.id)
		l.pending = false
	}
}

// Active reports whether the loop reschedules itself.
func (l *Loop) Active() bool {
	return l.active
}

// Ticks returns how many times the task has run.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

func (l *Loop) run() {
	l.pending = false
	l.ticks++
	l.task()
	if l.active && !l.pending {
		l.pending = true
		l.id = l.sched.RequestFrame(l.run)
	}
}
