package page

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// EURToGBP is the fixed demo rate.
	EURToGBP = 0.85

	PulseDuration = 200 * time.Millisecond
	FlipDuration  = 300 * time.Millisecond
)

var leadingNumber = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads the leading number of s. Anything unparsable is 0;
// a number too large for a float64 is an infinity of its sign.
func ParseAmount(s string) float64 {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

// Convert formats the GBP value of a EUR amount to two decimals. Infinite
// amounts print as "Infinity" and negative zero as "0.00", as the page does.
func Convert(eur string) string {
	gbp := ParseAmount(eur) * EURToGBP
	switch {
	case math.IsInf(gbp, 1):
		return "Infinity"
	case math.IsInf(gbp, -1):
		return "-Infinity"
	case gbp == 0:
		return "0.00"
	}
	return strconv.FormatFloat(gbp, 'f', 2, 64)
}

// Exchange is the currency widget: an input, a derived output that pulses
// on change, and a swap arrow that flips briefly when pressed.
type Exchange struct {
	Input  string
	Output string
	pulse  time.Duration
	flip   time.Duration
}

func NewExchange() *Exchange {
	return &Exchange{Output: Convert("")}
}

func (e *Exchange) SetInput(s string) {
	e.Input = s
	e.Output = Convert(s)
	e.pulse = PulseDuration
}

func (e *Exchange) Flip() { e.flip = FlipDuration }

func (e *Exchange) Advance(dt time.Duration) {
	e.pulse = max(0, e.pulse-dt)
	e.flip = max(0, e.flip-dt)
}

// Pulsing reports whether the output is still highlighted.
func (e *Exchange) Pulsing() bool { return e.pulse > 0 }

// Flipped reports whether the arrow is turned around.
func (e *Exchange) Flipped() bool { return e.flip > 0 }
