package pump

import (
	"strconv"
	"strings"
)

// Reply is one parsed device response.
type Reply interface {
	PumpStatus() Status
	isReply()
}

// Ack acknowledges a command that carries no payload.
type Ack struct {
	Status Status
}

// Value carries the numeric payload of a query reply.
type Value struct {
	V      float64
	Status Status
}

// Rejected reports that the device refused a numeric argument as out of
// range.
type Rejected struct {
	Status Status
}

func (a Ack) PumpStatus() Status      { return a.Status }
func (v Value) PumpStatus() Status    { return v.Status }
func (r Rejected) PumpStatus() Status { return r.Status }

func (Ack) isReply()      {}
func (Value) isReply()    {}
func (Rejected) isReply() {}

// oor is the device's textual refusal of an argument outside its bounds.
const oor = "OOR"

// ParseReply decodes one accumulated frame. A three-field frame carries a
// payload in the middle field; any other shape is a plain acknowledgment.
// The pump state rides on the last character of the last field either way.
func ParseReply(frame string) (Reply, error) {
	fields := strings.Fields(frame)
	if len(fields) == 0 {
		return nil, &DecodeError{Frame: frame}
	}
	last := fields[len(fields)-1]
	status := StatusOf(last[len(last)-1])
	if len(fields) != 3 {
		return Ack{Status: status}, nil
	}
	if fields[1] == oor {
		return Rejected{Status: status}, nil
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, &DecodeError{Frame: frame, Field: fields[1]}
	}
	return Value{V: v, Status: status}, nil
}
