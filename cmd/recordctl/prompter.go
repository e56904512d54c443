package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zoobzio/record"
)

// errNoInput is returned when the input ends mid-prompt.
var errNoInput = errors.New("no more input")

// terminal prompts on out and reads answers line by line from in.
type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{in: bufio.NewReader(in), out: out}
}

func (t *terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Prompt asks until the answer parses. An empty answer takes the default.
func (t *terminal) Prompt(req record.Request) (any, error) {
	for {
		if req.Default != nil {
			fmt.Fprintf(t.out, "? %s [%v]: ", req.Message, req.Default)
		} else {
			fmt.Fprintf(t.out, "? %s: ", req.Message)
		}
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" && req.Default != nil {
			return req.Default, nil
		}
		v, err := req.Validate.Parse(line)
		if err != nil {
			fmt.Fprintf(t.out, "  invalid %s: %v\n", req.Type, err)
			continue
		}
		return v, nil
	}
}

// Confirm asks a yes/no question. Anything but y or yes is no.
func (t *terminal) Confirm(_ record.Request, question string) (bool, error) {
	fmt.Fprintf(t.out, "? %s [y/N]: ", question)
	line, err := t.readLine()
	if err != nil {
		return false, err
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes", nil
}
