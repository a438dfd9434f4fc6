package pump_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/pump"
)

// scriptPort answers each written command from a canned reply table,
// immediately and in full. Commands without an entry get silence.
type scriptPort struct {
	replies map[string]string
	log     []string
	buf     []byte
	flushes int
	closes  int
}

func (s *scriptPort) Write(p []byte) (int, error) {
	cmd := strings.TrimSuffix(string(p), "\r")
	s.log = append(s.log, cmd)
	if r, found := s.replies[cmd]; found {
		s.buf = append(s.buf, r...)
	}
	return len(p), nil
}

func (s *scriptPort) ReadAvailable(p []byte) (int, error) {
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

func (s *scriptPort) FlushInput() error {
	s.flushes++
	s.buf = nil
	return nil
}

func (s *scriptPort) BaudRate() int { return 9600 }
func (s *scriptPort) Close() error  { s.closes++; return nil }

func newScriptPort() *scriptPort {
	return &scriptPort{replies: map[string]string{
		"":          "\n:",
		"CLT":       "CLT :",
		"CLV":       "CLV :",
		"RUN":       "RUN >",
		"REV":       "REV <",
		"STP":       "STP :",
		"MLM3":      "R 3.00 >",
		"MLT 0.2":   "MLT 0.2 :",
		"MLT 99999": "MLT 99999 OOR :",
		"DIA":       "DIA 10.00 :",
		"RAT":       "RAT 3.00 :",
		"VOL":       "VOL 0.75 :",
		"TAR":       "TAR 0.20 :",
	}}
}

func newTestPump(t *testing.T, port pump.Transport) *pump.Pump {
	t.Helper()
	p, err := pump.New(port, nil,
		pump.WithReplyWindow(50*time.Millisecond),
		pump.WithFrameWindow(25*time.Millisecond),
	)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewProbesThenClearsTarget(t *testing.T) {
	s := newScriptPort()
	p := newTestPump(t, s)
	defer func() { _ = p.Close() }()
	want := []string{"", "CLT"}
	if len(s.log) != len(want) {
		t.Fatalf("expected %d commands at connect, got %q", len(want), s.log)
	}
	for i, w := range want {
		if s.log[i] != w {
			t.Errorf("command %d: expected %q, got %q", i, w, s.log[i])
		}
	}
}

func TestNewFailsWhenDeviceSilent(t *testing.T) {
	s := &scriptPort{replies: map[string]string{}}
	_, err := pump.New(s, nil,
		pump.WithReplyWindow(30*time.Millisecond),
		pump.WithFrameWindow(15*time.Millisecond),
	)
	var ce *pump.ConnectError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectError, got %v", err)
	}
	if !errors.Is(err, pump.ErrNoReply) {
		t.Errorf("expected wrapped ErrNoReply, got %v", err)
	}
	if s.closes != 1 {
		t.Errorf("expected transport closed once on failed connect, got %d", s.closes)
	}
}

func TestStatus(t *testing.T) {
	p := newTestPump(t, newScriptPort())
	defer func() { _ = p.Close() }()
	st, err := p.Status()
	if err != nil {
		t.Fatal(err)
	}
	if st != pump.Stopped {
		t.Errorf("expected stopped, got %v", st)
	}
}

func TestSetRateRoundTrip(t *testing.T) {
	p := newTestPump(t, newScriptPort())
	defer func() { _ = p.Close() }()
	ok, err := p.SetRate(3, pump.MlPerMin)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected rate to be accepted")
	}
}

func TestSettersRejectNonPositiveLocally(t *testing.T) {
	s := newScriptPort()
	p := newTestPump(t, s)
	defer func() { _ = p.Close() }()
	sent := len(s.log)
	for _, v := range []float64{0, -1} {
		ok, err := p.SetRate(v, pump.MlPerMin)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Errorf("rate %v: expected rejection", v)
		}
		ok, err = p.SetTargetVolume(v)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Errorf("target %v: expected rejection", v)
		}
	}
	if len(s.log) != sent {
		t.Errorf("non-positive arguments must not reach the wire, got %q", s.log[sent:])
	}
}

func TestSetTargetVolumeOutOfRange(t *testing.T) {
	p := newTestPump(t, newScriptPort())
	defer func() { _ = p.Close() }()
	ok, err := p.SetTargetVolume(99999)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected OOR reply to surface as rejection")
	}
}

func TestGetters(t *testing.T) {
	p := newTestPump(t, newScriptPort())
	defer func() { _ = p.Close() }()
	cases := []struct {
		name  string
		query func() (float64, error)
		want  float64
	}{
		{"diameter", p.Diameter, 10},
		{"rate", p.Rate, 3},
		{"pumped volume", p.PumpedVolume, 0.75},
		{"target volume", p.TargetVolume, 0.2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := c.query()
			if err != nil {
				t.Fatal(err)
			}
			if v != c.want {
				t.Errorf("expected %v, got %v", c.want, v)
			}
		})
	}
}

func TestGetterWithoutPayload(t *testing.T) {
	s := newScriptPort()
	s.replies["DIA"] = "DIA :"
	p := newTestPump(t, s)
	defer func() { _ = p.Close() }()
	_, err := p.Diameter()
	if !errors.Is(err, pump.ErrNoValue) {
		t.Fatalf("expected ErrNoValue, got %v", err)
	}
}

func TestRunAndStop(t *testing.T) {
	p := newTestPump(t, newScriptPort())
	defer func() { _ = p.Close() }()
	if err := p.Run(pump.Forward); err != nil {
		t.Fatal(err)
	}
	if err := p.Run(pump.Reverse); err != nil {
		t.Fatal(err)
	}
	if err := p.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := p.ClearPumpedVolume(); err != nil {
		t.Fatal(err)
	}
	if err := p.ClearTargetVolume(); err != nil {
		t.Fatal(err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	s := newScriptPort()
	p := newTestPump(t, s)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close must be a no-op, got %v", err)
	}
	if s.closes != 1 {
		t.Errorf("expected one transport close, got %d", s.closes)
	}
	if err := p.Stop(); !errors.Is(err, pump.ErrClosed) {
		t.Errorf("expected ErrClosed after close, got %v", err)
	}
}
