package menu

import (
	"errors"
	"strings"
)

var (
	ErrMissingTarget = errors.New("missing target field")
	ErrEmptyTarget   = errors.New("empty target")
)

// Entry is one configured menu line.
type Entry struct {
	// ID is the entry's position among the non-blank lines of the file.
	ID        int
	Line      int
	Label     string
	Target    string
	Separator bool
}

// Result is the outcome of parsing one line. Err is nil for a well formed
// entry; a malformed entry still carries a usable Entry with an empty target.
type Result struct {
	Entry Entry
	Raw   string
	Err   error
}

func (r Result) OK() bool        { return r.Err == nil }
func (r Result) Malformed() bool { return r.Err != nil }

// ParseLine classifies a trimmed, non-blank config line.
//
// A line starting with "-" is a separator. Anything else is "label,target";
// only the first two comma separated fields are read and neither is trimmed.
func ParseLine(line string) Result {
	res := Result{Raw: line}
	if strings.HasPrefix(line, "-") {
		res.Entry = Entry{Label: "-", Separator: true}
		return res
	}

	fields := strings.Split(line, ",")
	res.Entry.Label = fields[0]
	switch {
	case len(fields) < 2:
		res.Err = ErrMissingTarget
	case fields[1] == "":
		res.Err = ErrEmptyTarget
	default:
		res.Entry.Target = fields[1]
	}
	return res
}
