package pump

// Status is what the pump reports itself doing. Every reply ends with a
// prompt character that encodes it.
type Status int

const (
	Unknown Status = iota
	Stopped
	Infusing
	Refilling
	Stalled
)

var statusNames = []string{
	Unknown:   "unknown",
	Stopped:   "stopped",
	Infusing:  "infusing",
	Refilling: "refilling",
	Stalled:   "stalled",
}

func (s Status) String() string {
	return statusNames[s]
}

// StatusOf maps the terminal prompt character of a reply to a Status. The
// mapping is total: anything outside the four prompt characters is Unknown,
// including '?', which marks a rejected command rather than a pump state.
func StatusOf(c byte) Status {
	switch c {
	case ':':
		return Stopped
	case '>':
		return Infusing
	case '<':
		return Refilling
	case '*':
		return Stalled
	}
	return Unknown
}
