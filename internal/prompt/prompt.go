// Package prompt implements the console's input protocol. Every read
// checks the escape tokens before any parsing, so \b and \l work in
// any field, and every typed read loops with an alert until the input
// is acceptable or the user escapes.
package prompt

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"merchant-console/internal/codec"
	"merchant-console/internal/render"
)

const (
	// TokenBack unwinds the current workflow one level.
	TokenBack = `\b`
	// TokenLogout ends the session immediately, without confirmation.
	TokenLogout = `\l`
	// TokenNextPage and TokenPrevPage drive paged views.
	TokenNextPage = ">"
	TokenPrevPage = "<"

	// NotSpecified fills optional fields the user left blank.
	NotSpecified = "Not specified"
)

// Kind classifies the outcome of a read.
type Kind int

const (
	// Accepted means a value passed validation.
	Accepted Kind = iota
	// Back means the user typed the back token.
	Back
	// Logout means the user typed the logout token or input ended.
	Logout
)

// Reply is the outcome of a single read: a value, or an escape.
type Reply struct {
	Kind  Kind
	Value string
}

// Escaped reports whether the reply carries no value.
func (r Reply) Escaped() bool {
	return r.Kind != Accepted
}

func accepted(value string) Reply {
	return Reply{Kind: Accepted, Value: value}
}

// Reader reads and classifies console input.
type Reader struct {
	scanner *bufio.Scanner
	ui      *render.Console
}

// NewReader wraps in with the input protocol, alerting through ui.
func NewReader(in io.Reader, ui *render.Console) *Reader {
	return &Reader{scanner: bufio.NewScanner(in), ui: ui}
}

// read returns the next trimmed line. An exhausted input stream reads
// as the logout token so callers' retry loops always terminate.
func (r *Reader) read() (string, Kind) {
	if !r.scanner.Scan() {
		return "", Logout
	}
	line := strings.TrimSpace(r.scanner.Text())
	switch line {
	case TokenBack:
		return "", Back
	case TokenLogout:
		return "", Logout
	}
	return line, Accepted
}

// Read returns the next line without printing a prompt; menus print
// their own option line before calling it.
func (r *Reader) Read() Reply {
	line, kind := r.read()
	return Reply{Kind: kind, Value: line}
}

// Line prompts for field and returns the raw line, classifying only
// the escape tokens. Menu loops use it and interpret options themselves.
func (r *Reader) Line(field string) Reply {
	r.ui.PromptField(field)
	line, kind := r.read()
	return Reply{Kind: kind, Value: line}
}

// Until prompts for field and re-reads until accept returns nil or the
// user escapes. accept's error message is shown as the alert.
func (r *Reader) Until(field string, accept func(string) error) Reply {
	for {
		r.ui.PromptField(field)
		line, kind := r.read()
		if kind != Accepted {
			return Reply{Kind: kind}
		}
		if err := accept(line); err != nil {
			r.ui.Alert(err.Error())
			continue
		}
		return accepted(line)
	}
}

// NonEmpty prompts until the user enters a non-blank value.
func (r *Reader) NonEmpty(field string) Reply {
	for {
		r.ui.PromptField(field)
		line, kind := r.read()
		if kind != Accepted {
			return Reply{Kind: kind}
		}
		if line == "" {
			r.ui.AlertUnformatted(field)
			continue
		}
		return accepted(line)
	}
}

// Optional prompts once; a blank value becomes NotSpecified.
func (r *Reader) Optional(field string) Reply {
	r.ui.PromptField(field)
	line, kind := r.read()
	if kind != Accepted {
		return Reply{Kind: kind}
	}
	if line == "" {
		line = NotSpecified
	}
	return accepted(line)
}

// Float prompts until the input parses as a float accepted by validate.
// validate may be nil.
func (r *Reader) Float(field string, validate func(float64) error) (float64, Kind) {
	for {
		r.ui.PromptField(field)
		line, kind := r.read()
		if kind != Accepted {
			return 0, kind
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			r.ui.AlertUnformatted(field)
			continue
		}
		if validate != nil {
			if err := validate(v); err != nil {
				r.ui.Alert(err.Error())
				continue
			}
		}
		return v, Accepted
	}
}

// Int prompts until the input parses as an int accepted by validate.
// validate may be nil.
func (r *Reader) Int(field string, validate func(int) error) (int, Kind) {
	for {
		r.ui.PromptField(field)
		line, kind := r.read()
		if kind != Accepted {
			return 0, kind
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			r.ui.AlertUnformatted(field)
			continue
		}
		if validate != nil {
			if err := validate(v); err != nil {
				r.ui.Alert(err.Error())
				continue
			}
		}
		return v, Accepted
	}
}

// Date prompts for a date in the "yyyy M d" entry format until it
// parses. A blank entry is accepted as no date.
func (r *Reader) Date(field string) (*time.Time, Kind) {
	for {
		r.ui.PromptDate(field)
		line, kind := r.read()
		if kind != Accepted {
			return nil, kind
		}
		if line == "" {
			return nil, Accepted
		}
		t, err := codec.ParseInputDate(line)
		if err != nil {
			r.ui.AlertUnformatted(field)
			continue
		}
		return &t, Accepted
	}
}

// Confirm asks for y/n approval of operation. It returns true only on
// an explicit "y"; "n" and the back token both read as a declined
// confirmation, and any other input re-prompts.
func (r *Reader) Confirm(operation string) (bool, Kind) {
	for {
		r.ui.PromptConfirm(operation)
		line, kind := r.read()
		switch kind {
		case Back:
			return false, Accepted
		case Logout:
			return false, Logout
		}
		switch strings.ToLower(line) {
		case "y":
			return true, Accepted
		case "n":
			return false, Accepted
		default:
			r.ui.Alert("only y or n is accepted, please try again")
		}
	}
}
