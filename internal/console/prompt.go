package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

var errInvalidNumber = errors.New("not a number")

// prompter reads answers line by line. Passwords are read without echo when
// the input is a terminal and as plain lines otherwise.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// line prints label and returns the next input line without its newline.
// A final line without a newline is returned before io.EOF.
func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || s == "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *prompter) password(label string) (string, error) {
	if p.fd < 0 {
		return p.line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// number reads an integer. errInvalidNumber reports unparsable input.
func (p *prompter) number(label string) (int, error) {
	s, err := p.line(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errInvalidNumber
	}
	return n, nil
}

// optionalNumber returns nil for a blank answer
func (p *prompter) optionalNumber(label string) (*int, error) {
	s, err := p.line(label)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, errInvalidNumber
	}
	return &n, nil
}

func (p *prompter) money(label string) (decimal.Decimal, error) {
	s, err := p.line(label)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errInvalidNumber
	}
	return d, nil
}

func (p *prompter) optionalMoney(label string) (*decimal.Decimal, error) {
	s, err := p.line(label)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errInvalidNumber
	}
	return &d, nil
}

// confirm accepts only "yes", ignoring case and surrounding spaces
func (p *prompter) confirm(label string) (bool, error) {
	s, err := p.line(label + " (yes/no): ")
	if err != nil {
		return false, err
	}
	return isYes(s), nil
}

func isYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
