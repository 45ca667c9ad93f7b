package sfu

import (
	"sync/atomic"

	"github.com/pion/webrtc/v4"
)

// LegState is what the relay loop does with one subscriber leg on the
// next packet: forward it, drop it while paused, or retire the leg.
type LegState int32

const (
	LegForwarding LegState = iota
	LegPaused
	LegRetired
)

// Leg is one call party's copy of another party's published track. The
// relay loop polls its state on every RTP packet, so transitions go
// through an atomic rather than the relay mutex.
type Leg struct {
	Out   *webrtc.TrackLocalStaticRTP
	state atomic.Int32 // zero value is LegForwarding
}

func NewLeg(out *webrtc.TrackLocalStaticRTP) *Leg {
	return &Leg{Out: out}
}

func (l *Leg) State() LegState {
	return LegState(l.state.Load())
}

// Resume reinstates forwarding after a pause.
func (l *Leg) Resume() {
	l.state.Store(int32(LegForwarding))
}

// Pause keeps the leg alive but skips packet writes, e.g. while the
// publisher is muted.
func (l *Leg) Pause() {
	l.state.Store(int32(LegPaused))
}

// Retire marks the leg for removal; the relay loop reaps it on the next
// packet.
func (l *Leg) Retire() {
	l.state.Store(int32(LegRetired))
}
