// Package pump drives a Harvard Apparatus syringe pump over a serial link.
//
// The pump speaks a line-oriented ASCII protocol: a short mnemonic plus an
// optional numeric argument, terminated by a carriage return. Replies are
// whitespace-delimited text ending in a prompt character that encodes the
// pump state. The package covers command encoding, the timed read loop that
// frames a reply, reply parsing, and one method per device operation.
package pump

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pump is one connection to a pump. It owns its Transport for the life of
// the connection and runs at most one command at a time.
type Pump struct {
	mu     sync.Mutex
	port   Transport
	logger *zap.Logger
	closed bool

	replyWindow time.Duration
	frameWindow time.Duration

	closeOnce sync.Once
}

// New takes ownership of port, verifies the device answers a status query,
// and clears any leftover target volume from a previous session. The port is
// closed again if either step fails.
func New(port Transport, logger *zap.Logger, opts ...Option) (*Pump, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pump{
		port:        port,
		logger:      logger,
		replyWindow: replyWindow,
		frameWindow: frameWindow,
	}
	for _, opt := range opts {
		opt(p)
	}
	if _, err := p.exchange(StatusQuery{}); err != nil {
		_ = port.Close()
		return nil, &ConnectError{Err: err}
	}
	if _, err := p.exchange(ClearTarget{}); err != nil {
		_ = port.Close()
		return nil, &ConnectError{Err: err}
	}
	return p, nil
}

// Close releases the transport. Closing twice is a no-op.
func (p *Pump) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		err = p.port.Close()
	})
	return err
}

func (p *Pump) do(cmd Command) (Reply, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	return p.exchange(cmd)
}

// setArg runs a setter carrying the numeric argument v. Non-positive
// arguments are rejected locally without touching the device; an OOR reply
// is the device rejecting the value. Both surface as a false result rather
// than an error, so callers must check the bool.
func (p *Pump) setArg(cmd Command, v float64) (bool, error) {
	if v <= 0 {
		return false, nil
	}
	r, err := p.do(cmd)
	if err != nil {
		return false, err
	}
	_, rejected := r.(Rejected)
	return !rejected, nil
}

// query runs a getter and extracts its numeric payload.
func (p *Pump) query(cmd Command) (float64, error) {
	r, err := p.do(cmd)
	if err != nil {
		return 0, err
	}
	v, ok := r.(Value)
	if !ok {
		return 0, ErrNoValue
	}
	return v.V, nil
}

// Status asks the pump what it is doing.
func (p *Pump) Status() (Status, error) {
	r, err := p.do(StatusQuery{})
	if err != nil {
		return Unknown, err
	}
	return r.PumpStatus(), nil
}

// SetRate programs the pumping rate in the given units.
func (p *Pump) SetRate(rate float64, units RateUnits) (bool, error) {
	return p.setArg(SetRate{Rate: rate, Units: units}, rate)
}

// SetDiameter programs the syringe bore diameter in millimeters.
func (p *Pump) SetDiameter(mm float64) (bool, error) {
	return p.setArg(SetDiameter{MM: mm}, mm)
}

// SetTargetVolume programs the volume at which the pump stops itself, in
// milliliters.
func (p *Pump) SetTargetVolume(ml float64) (bool, error) {
	return p.setArg(SetTarget{ML: ml}, ml)
}

// Run starts the pump in the given direction.
func (p *Pump) Run(dir Direction) error {
	_, err := p.do(Run{Dir: dir})
	return err
}

// Stop halts the plunger.
func (p *Pump) Stop() error {
	_, err := p.do(Stop{})
	return err
}

// ClearTargetVolume removes the programmed target volume.
func (p *Pump) ClearTargetVolume() error {
	_, err := p.do(ClearTarget{})
	return err
}

// ClearPumpedVolume zeroes the delivered-volume counter.
func (p *Pump) ClearPumpedVolume() error {
	_, err := p.do(ClearVolume{})
	return err
}

// Diameter reads back the programmed syringe diameter in millimeters.
func (p *Pump) Diameter() (float64, error) {
	return p.query(DiameterQuery{})
}

// Rate reads back the programmed pumping rate.
func (p *Pump) Rate() (float64, error) {
	return p.query(RateQuery{})
}

// PumpedVolume reads the volume delivered so far, in milliliters.
func (p *Pump) PumpedVolume() (float64, error) {
	return p.query(VolumeQuery{})
}

// TargetVolume reads back the programmed target volume in milliliters.
func (p *Pump) TargetVolume() (float64, error) {
	return p.query(TargetQuery{})
}
