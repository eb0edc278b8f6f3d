// Package signal provides mechanism for notifying multiple listeners when something happened.
package signal

import (
	"sync"
)

// A Signal is used to let multiple listeners know when something happened.
// Events carry no payload.
type Signal struct {
	mu  sync.Mutex
	chs map[<-chan struct{}]chan struct{}
}

// New creates a new Signal.
func New() *Signal {
	return &Signal{
		chs: make(map[<-chan struct{}]chan struct{}),
	}
}

// Broadcast signals all the listeners. Broadcast never blocks: a listener
// that has not drained its previous event does not receive a second one.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	for _, ch := range s.chs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	s.mu.Unlock()
}

// Bind creates a new listening channel bound to the signal. The channel has a
// buffer of 1.
func (s *Signal) Bind() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.chs[ch] = ch
	s.mu.Unlock()
	return ch
}

// Unbind stops the listening channel bound to the signal and closes it.
// Unbinding an unknown channel is a no-op.
func (s *Signal) Unbind(ch <-chan struct{}) {
	s.mu.Lock()
	if c, ok := s.chs[ch]; ok {
		delete(s.chs, ch)
		close(c)
	}
	s.mu.Unlock()
}

// Listeners returns the number of bound channels.
func (s *Signal) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chs)
}
