package pump

import (
	"time"

	"go.uber.org/zap"
)

// Transport is the byte-level serial link the engine drives. Reads must be
// non-blocking: ReadAvailable returns whatever is buffered, possibly nothing.
// The engine owns its Transport exclusively for the life of the connection.
type Transport interface {
	Write(p []byte) (int, error)
	ReadAvailable(p []byte) (int, error)
	FlushInput() error
	BaudRate() int
	Close() error
}

const (
	// replyWindow bounds how long the pump gets to start answering.
	replyWindow = time.Second
	// frameWindow bounds how long a started reply gets to reach its
	// terminator.
	frameWindow = 500 * time.Millisecond
)

// pollInterval derives the poll period from the link speed: four character
// times at 12 bits per character, so the loop stays responsive relative to
// the line rate without spinning.
func pollInterval(baud int) time.Duration {
	return 12 * 4 * time.Second / time.Duration(baud)
}

// isTerminator reports whether c ends a frame. The four prompt characters
// carry the pump state; '?' marks a rejected command.
func isTerminator(c byte) bool {
	switch c {
	case ':', '<', '>', '*', '?':
		return true
	}
	return false
}

// exchange sends one command and collects its terminated reply. The protocol
// is strictly synchronous, one frame in flight per connection.
func (p *Pump) exchange(cmd Command) (Reply, error) {
	if err := p.port.FlushInput(); err != nil {
		return nil, err
	}
	msg := append(cmd.Bytes(), '\r')
	p.logger.Debug("Sending message", zap.String("msg", string(msg)))
	if _, err := p.port.Write(msg); err != nil {
		return nil, err
	}
	frame, err := p.collect()
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Received message", zap.String("msg", frame))
	return ParseReply(frame)
}

// collect waits for the reply to start, then drains bytes until the last one
// is a terminator. The first window is generous in case the device is slow
// to turn around; the second is tight because a started reply streams at
// line rate.
func (p *Pump) collect() (string, error) {
	buf := make([]byte, 64)
	var frame []byte
	interval := pollInterval(p.port.BaudRate())

	deadline := time.Now().Add(p.replyWindow)
	for {
		n, err := p.port.ReadAvailable(buf)
		if err != nil {
			return "", err
		}
		if n > 0 {
			frame = append(frame, buf[:n]...)
			break
		}
		if time.Now().After(deadline) {
			return "", ErrNoReply
		}
		time.Sleep(interval)
	}

	deadline = time.Now().Add(p.frameWindow)
	for !isTerminator(frame[len(frame)-1]) {
		n, err := p.port.ReadAvailable(buf)
		if err != nil {
			return "", err
		}
		if n > 0 {
			frame = append(frame, buf[:n]...)
			continue
		}
		if time.Now().After(deadline) {
			return "", ErrFrameTimeout
		}
		time.Sleep(interval)
	}
	return string(frame), nil
}
