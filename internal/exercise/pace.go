package exercise

import "time"

// Pacer waits between lines of conversational output. The pauses are
// cosmetic; tests use NoPause.
type Pacer interface {
	Pause(d time.Duration)
}

// Scaled multiplies every pause by Factor. Zero or less skips pauses.
type Scaled struct {
	Factor float64
	sleep  func(time.Duration)
}

func NewScaled(factor float64) *Scaled {
	return &Scaled{Factor: factor, sleep: time.Sleep}
}

func (s *Scaled) Pause(d time.Duration) {
	if s.Factor <= 0 || d <= 0 {
		return
	}
	s.sleep(time.Duration(float64(d) * s.Factor))
}

type noPause struct{}

func (noPause) Pause(time.Duration) {}

// NoPause never waits
var NoPause Pacer = noPause{}
