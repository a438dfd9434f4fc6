package pump

import "strconv"

// Command is one request to the pump, rendered without the trailing carriage
// return.
type Command interface {
	Bytes() []byte
}

// RateUnits selects how the pump interprets a rate argument.
type RateUnits string

const (
	MlPerMin RateUnits = "ml/m"
	MlPerHr  RateUnits = "ml/hr"
	UlPerMin RateUnits = "ul/m"
	UlPerHr  RateUnits = "ul/hr"
)

// ratePrefix maps a unit token to its command mnemonic. Unrecognized tokens
// fall back to ml/m; the device has always been driven this way, so the
// fallback stays silent.
var ratePrefix = map[RateUnits]string{
	UlPerMin: "ULM",
	MlPerHr:  "MLM",
	UlPerHr:  "ULH",
	MlPerMin: "MLM",
}

// Direction selects which way the plunger moves.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

const argMax = 5

// formatArg renders v and truncates the rendered text to at most five
// characters. The truncation is on the text, not the value: 123.456 goes to
// the wire as 123.4, and 12345.6 as 12345 with the fraction gone entirely.
// Historical firmware saw exactly this, so it is kept as is.
func formatArg(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if len(s) > argMax {
		s = s[:argMax]
	}
	return s
}

type (
	// StatusQuery is the empty command; the pump answers with its prompt.
	StatusQuery struct{}

	// Run starts the pump in the given direction.
	Run struct {
		Dir Direction
	}

	Stop        struct{}
	ClearTarget struct{}
	ClearVolume struct{}

	// SetRate programs the pumping rate in the given units.
	SetRate struct {
		Rate  float64
		Units RateUnits
	}

	// SetDiameter programs the syringe bore diameter in millimeters.
	SetDiameter struct {
		MM float64
	}

	// SetTarget programs the target volume in milliliters.
	SetTarget struct {
		ML float64
	}

	DiameterQuery struct{}
	RateQuery     struct{}
	VolumeQuery   struct{}
	TargetQuery   struct{}
)

func (StatusQuery) Bytes() []byte { return []byte{} }

func (r Run) Bytes() []byte {
	if r.Dir == Reverse {
		return []byte("REV")
	}
	return []byte("RUN")
}

func (Stop) Bytes() []byte        { return []byte("STP") }
func (ClearTarget) Bytes() []byte { return []byte("CLT") }
func (ClearVolume) Bytes() []byte { return []byte("CLV") }

func (s SetRate) Bytes() []byte {
	prefix, ok := ratePrefix[s.Units]
	if !ok {
		prefix = ratePrefix[MlPerMin]
	}
	return []byte(prefix + formatArg(s.Rate))
}

func (s SetDiameter) Bytes() []byte { return []byte("MMD " + formatArg(s.MM)) }
func (s SetTarget) Bytes() []byte   { return []byte("MLT " + formatArg(s.ML)) }

func (DiameterQuery) Bytes() []byte { return []byte("DIA") }
func (RateQuery) Bytes() []byte     { return []byte("RAT") }
func (VolumeQuery) Bytes() []byte   { return []byte("VOL") }
func (TargetQuery) Bytes() []byte   { return []byte("TAR") }

var (
	_ Command = (*StatusQuery)(nil)
	_ Command = (*Run)(nil)
	_ Command = (*Stop)(nil)
	_ Command = (*ClearTarget)(nil)
	_ Command = (*ClearVolume)(nil)
	_ Command = (*SetRate)(nil)
	_ Command = (*SetDiameter)(nil)
	_ Command = (*SetTarget)(nil)
	_ Command = (*DiameterQuery)(nil)
	_ Command = (*RateQuery)(nil)
	_ Command = (*VolumeQuery)(nil)
	_ Command = (*TargetQuery)(nil)
)
