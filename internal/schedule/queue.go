// Package schedule is a single-threaded cooperative timer queue driven by
// the frame loop. Nothing here is safe for concurrent use; every callback
// runs inside Advance on the caller's goroutine.
package schedule

import "time"

type timer struct {
	at      time.Duration
	period  time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

// Handle cancels a timer returned by After or Every.
type Handle struct {
	t *timer
}

// Stop cancels the timer. Calling it more than once, or from inside the
// timer's own callback, is fine.
func (h Handle) Stop() {
	if h.t != nil {
		h.t.stopped = true
	}
}

// Active reports whether the timer can still fire.
func (h Handle) Active() bool {
	return h.t != nil && !h.t.stopped
}

// Queue orders timers by due time, then by insertion.
type Queue struct {
	now    time.Duration
	seq    uint64
	timers []*timer
	frame  []func()
}

func New() *Queue {
	return &Queue{}
}

// Now is the total time advanced so far.
func (q *Queue) Now() time.Duration { return q.now }

// Pending counts live timers and queued next-frame callbacks.
func (q *Queue) Pending() int {
	n := len(q.frame)
	for _, t := range q.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// After runs fn once, d after the current queue time.
func (q *Queue) After(d time.Duration, fn func()) Handle {
	return q.add(d, 0, fn)
}

// Every runs fn each period until stopped. The first run is one period
// from now.
func (q *Queue) Every(period time.Duration, fn func()) Handle {
	if period <= 0 {
		panic("schedule: non-positive period")
	}
	return q.add(period, period, fn)
}

// NextFrame runs fn at the start of the next Advance call.
func (q *Queue) NextFrame(fn func()) {
	q.frame = append(q.frame, fn)
}

func (q *Queue) add(d, period time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	q.seq++
	t := &timer{at: q.now + d, period: period, seq: q.seq, fn: fn}
	q.timers = append(q.timers, t)
	return Handle{t: t}
}

// Advance moves the queue forward by dt. Next-frame callbacks queued before
// the call run first; then every timer due within the window fires in
// order, including ones scheduled by earlier callbacks in the same window.
func (q *Queue) Advance(dt time.Duration) {
	frame := q.frame
	q.frame = nil
	for _, fn := range frame {
		fn()
	}

	end := q.now + dt
	for {
		t := q.popDue(end)
		if t == nil {
			break
		}
		q.now = t.at
		t.fn()
		if t.period == 0 {
			t.stopped = true
			continue
		}
		if !t.stopped {
			t.at += t.period
			q.seq++
			t.seq = q.seq
			q.timers = append(q.timers, t)
		}
	}
	q.now = end
}

// popDue removes and returns the earliest live timer due at or before end.
// Stopped timers are dropped along the way.
func (q *Queue) popDue(end time.Duration) *timer {
	best := -1
	live := q.timers[:0]
	for _, t := range q.timers {
		if t.stopped {
			continue
		}
		live = append(live, t)
	}
	clear(q.timers[len(live):])
	q.timers = live

	for i, t := range q.timers {
		if t.at > end {
			continue
		}
		if best < 0 || t.at < q.timers[best].at || (t.at == q.timers[best].at && t.seq < q.timers[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	t := q.timers[best]
	q.timers = append(q.timers[:best], q.timers[best+1:]...)
	return t
}
