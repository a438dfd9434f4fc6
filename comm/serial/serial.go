// Package serial adapts go.bug.st/serial to the transport the pump engine
// drives: 8 data bits, no parity, two stop bits, no flow control, framing
// handled entirely by the application.
package serial

import (
	"fmt"

	"go.bug.st/serial"
)

// DefaultBaud matches the pump's factory setting.
const DefaultBaud = 9600

// bauds are the rates the pump's DIP switches can select.
var bauds = map[int]bool{
	300:  true,
	1200: true,
	2400: true,
	9600: true,
}

// Port is an open serial connection to the pump. Reads are non-blocking.
type Port struct {
	port serial.Port
	baud int
}

// ListPorts names the serial ports present on the host.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

// OpenPort opens name at the given baud rate with the pump's fixed framing.
// A zero baud selects DefaultBaud; anything off the pump's rate list is
// refused before touching the hardware.
func OpenPort(name string, baud int) (*Port, error) {
	if baud == 0 {
		baud = DefaultBaud
	}
	if !bauds[baud] {
		return nil, fmt.Errorf("serial: unsupported baud rate %d", baud)
	}
	p, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.TwoStopBits,
	})
	if err != nil {
		return nil, err
	}
	// A zero read timeout makes Read return immediately with whatever is
	// buffered, which is the readAvailable the engine polls on.
	if err := p.SetReadTimeout(0); err != nil {
		_ = p.Close()
		return nil, err
	}
	return &Port{port: p, baud: baud}, nil
}

func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// ReadAvailable returns whatever inbound bytes are buffered without waiting.
func (p *Port) ReadAvailable(b []byte) (int, error) {
	return p.port.Read(b)
}

// FlushInput discards any buffered inbound bytes.
func (p *Port) FlushInput() error {
	return p.port.ResetInputBuffer()
}

func (p *Port) BaudRate() int {
	return p.baud
}

func (p *Port) Close() error {
	return p.port.Close()
}
