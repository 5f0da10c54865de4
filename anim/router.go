package anim

import (
	"github.com/oomph-ac/traverse/utils"
	"github.com/sirupsen/logrus"
)

// Listener is notified of state events.
type Listener interface {
	HandleStateEvent(info StateInfo, phase Phase)
}

// ListenerFunc is a Listener implemented by a function.
type ListenerFunc func(info StateInfo, phase Phase)

// HandleStateEvent calls f.
func (f ListenerFunc) HandleStateEvent(info StateInfo, phase Phase) {
	f(info, phase)
}

// Router forwards state events from the animation backend to its listeners, in subscription order. It only
// forwards Update and Exit events of visits it saw the Enter of, so listeners always see one Enter, any amount of
// Updates and one Exit per visit.
type Router struct {
	log       logrus.FieldLogger
	trace     bool
	listeners []Listener
	open      map[uint64]StateID
}

// NewRouter returns an empty Router. If trace is set, every event is logged at debug level.
func NewRouter(log logrus.FieldLogger, trace bool) *Router {
	return &Router{log: utils.LoggerOrNop(log), trace: trace, open: make(map[uint64]StateID)}
}

// Subscribe adds a listener.
func (r *Router) Subscribe(l Listener) {
	r.listeners = append(r.listeners, l)
}

// HandleStateEvent dispatches the event to every listener.
func (r *Router) HandleStateEvent(info StateInfo, phase Phase) {
	switch phase {
	case PhaseEnter:
		if _, ok := r.open[info.Visit]; ok {
			r.log.Debugf("anim: dropped duplicate enter of %s (visit=%d)", info.ID, info.Visit)
			return
		}
		r.open[info.Visit] = info.ID
	case PhaseUpdate, PhaseExit:
		if id, ok := r.open[info.Visit]; !ok || id != info.ID {
			r.log.Debugf("anim: dropped stray %s of %s (visit=%d)", phase, info.ID, info.Visit)
			return
		}
		if phase == PhaseExit {
			delete(r.open, info.Visit)
		}
	}
	if r.trace && phase != PhaseUpdate {
		r.log.Debugf("anim: %s %s (visit=%d t=%.2f)", phase, info.ID, info.Visit, info.NormalizedTime)
	}
	for _, l := range r.listeners {
		l.HandleStateEvent(info, phase)
	}
}
