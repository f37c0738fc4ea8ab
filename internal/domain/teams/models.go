package teams

import "strings"

// ID is a short upper-case team code (e.g. "TOR"). Records referring to the
// same team must carry byte-identical codes, so every ID passes through Normalize.
type ID string

// Unknown is used when an upstream record carries no usable team code.
const Unknown ID = "UNK"

// Normalize trims and upper-cases a raw team code.
func Normalize(raw string) ID {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return Unknown
	}
	return ID(code)
}

func (id ID) String() string {
	return string(id)
}
