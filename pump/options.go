package pump

import "time"

// Option configures a Pump.
type Option func(*Pump)

// WithReplyWindow overrides how long the device gets to start answering a
// command. The default is one second.
func WithReplyWindow(d time.Duration) Option {
	return func(p *Pump) {
		p.replyWindow = d
	}
}

// WithFrameWindow overrides how long a started reply gets to reach its
// terminator. The default is half a second.
func WithFrameWindow(d time.Duration) Option {
	return func(p *Pump) {
		p.frameWindow = d
	}
}
