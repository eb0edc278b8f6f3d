package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignal(t *testing.T) {
	s := New()
	a := s.Bind()
	b := s.Bind()
	require.Equal(t, 2, s.Listeners())

	s.Broadcast()

	for _, ch := range []<-chan struct{}{a, b} {
		select {
		case <-ch:
		default:
			t.Fatal("expected event")
		}
	}
}

func TestSignal_NeverBlocks(t *testing.T) {
	s := New()
	ch := s.Bind()

	s.Broadcast()
	s.Broadcast()

	<-ch
	select {
	case <-ch:
		t.Fatal("undrained listener should receive a single event")
	default:
	}
}

func TestSignal_Unbind(t *testing.T) {
	s := New()
	ch := s.Bind()
	s.Unbind(ch)
	s.Unbind(ch)
	require.Equal(t, 0, s.Listeners())

	s.Broadcast()
	_, open := <-ch
	require.False(t, open)
}
