package page

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsAutoAdvance(t *testing.T) {
	s := NewSteps("sign up", "verify", "send")

	assert.False(t, s.Advance(2*time.Second))
	assert.Equal(t, 0, s.Active())
	assert.True(t, s.Advance(time.Second))
	assert.Equal(t, 1, s.Active())

	s.Advance(2 * StepInterval)
	assert.Equal(t, 0, s.Active(), "wraps after the last step")
}

func TestStepsSelectAndRestart(t *testing.T) {
	s := NewSteps("a", "b", "c")
	s.Select(2)
	assert.True(t, s.IsActive(2))
	s.Select(7)
	assert.Equal(t, 2, s.Active())
	s.Restart()
	assert.Equal(t, 0, s.Active())
}

func TestStepsEmpty(t *testing.T) {
	s := NewSteps()
	assert.False(t, s.Advance(time.Minute))
}

func TestConvert(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"100", "85.00"},
		{"12.4", "10.54"},
		{"", "0.00"},
		{"abc", "0.00"},
		{"20eur", "17.00"},
		{" .5", "0.42"},
		{"-0", "0.00"},
		{"1e400", "Infinity"},
		{"-1e400eur", "-Infinity"},
		{"1e-400", "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Convert(tt.in), "Convert(%q)", tt.in)
	}
}

func TestParseAmountOverflow(t *testing.T) {
	assert.True(t, math.IsInf(ParseAmount("1e400"), 1))
	assert.True(t, math.IsInf(ParseAmount("-1e400"), -1))
	assert.Zero(t, ParseAmount("1e-400"))
	assert.Equal(t, 1.5e300, ParseAmount("1.5e300"))
}

func TestExchangeTimers(t *testing.T) {
	e := NewExchange()
	assert.Equal(t, "0.00", e.Output)

	e.SetInput("10")
	assert.Equal(t, "8.50", e.Output)
	assert.True(t, e.Pulsing())
	e.Advance(PulseDuration)
	assert.False(t, e.Pulsing())

	e.Flip()
	assert.True(t, e.Flipped())
	e.Advance(100 * time.Millisecond)
	assert.True(t, e.Flipped())
	e.Advance(200 * time.Millisecond)
	assert.False(t, e.Flipped())
}

func TestFormLifecycle(t *testing.T) {
	f := NewForm("name", "email")
	f.Focus("email")
	assert.Equal(t, "email", f.Focused())
	f.Set("name", "Ada")

	require.True(t, f.Submit())
	assert.False(t, f.Submit(), "ignored while sending")
	assert.Equal(t, "Sending...", f.Button())

	f.Advance(SendingDuration)
	assert.Equal(t, FormSent, f.State())
	assert.Equal(t, "Sent!", f.Button())
	assert.Equal(t, "Ada", f.Values["name"])

	f.Advance(SentDuration - time.Millisecond)
	assert.Equal(t, FormSent, f.State())
	f.Advance(time.Millisecond)
	assert.Equal(t, FormIdle, f.State())
	assert.Empty(t, f.Values)
	assert.Empty(t, f.Focused())
}

func TestFormAdvanceAcrossStates(t *testing.T) {
	f := NewForm("name")
	f.Submit()
	f.Advance(time.Hour)
	assert.Equal(t, FormIdle, f.State())
}

func TestRevealOneWay(t *testing.T) {
	var r Reveal
	hero := r.Add("hero", 0, 400, SectionOffset)
	card := r.Add("card", 900, 200, CardOffset)

	shown := r.Observe(0, 800)
	require.Len(t, shown, 1)
	assert.Equal(t, "hero", shown[0].Name)
	assert.Equal(t, 1.0, hero.Opacity())
	assert.Equal(t, CardOffset, card.Shift())

	// 10% of the card is 20px: bottom edge 900+20 needs scrollTop 170.
	assert.Empty(t, r.Observe(160, 800))
	assert.Len(t, r.Observe(170, 800), 1)
	assert.Zero(t, card.Shift())

	r.Observe(5000, 800)
	assert.True(t, hero.Visible)
}

func TestCursor(t *testing.T) {
	c := NewCursor()
	c.Move(100, 50)
	assert.Equal(t, 90.0, c.X)
	assert.Equal(t, 40.0, c.Y)
	c.Hover(true)
	assert.Equal(t, 2.0, c.Scale)
	c.Hover(false)
	assert.Equal(t, 1.0, c.Scale)
}

func TestButtonsHover(t *testing.T) {
	b := NewButtons()
	dy, scale := b.Transform("send")
	assert.Zero(t, dy)
	assert.Equal(t, 1.0, scale)

	b.Enter("send")
	assert.True(t, b.Hovered("send"))
	assert.False(t, b.Hovered("download"))
	dy, scale = b.Transform("send")
	assert.Equal(t, -3.0, dy)
	assert.Equal(t, 1.02, scale)

	b.Leave("send")
	dy, scale = b.Transform("send")
	assert.Zero(t, dy)
	assert.Equal(t, 1.0, scale)
}

func TestSmoothScroll(t *testing.T) {
	var s SmoothScroll
	_, ok := s.Advance(time.Second)
	assert.False(t, ok)

	s.Start(0, 320)
	require.True(t, s.Active())
	off, ok := s.Advance(ScrollDuration / 2)
	require.True(t, ok)
	assert.InDelta(t, 160.0, off, 1e-9)

	off, ok = s.Advance(ScrollDuration / 4)
	require.True(t, ok)
	assert.Greater(t, off, 160.0)
	assert.Less(t, off, 320.0)

	off, ok = s.Advance(time.Second)
	require.True(t, ok)
	assert.Equal(t, 320.0, off)
	assert.False(t, s.Active())

	s.Start(100, 100)
	assert.False(t, s.Active())

	s.Start(320, 0)
	s.Advance(ScrollDuration / 4)
	s.Stop()
	_, ok = s.Advance(time.Millisecond)
	assert.False(t, ok)
}

func TestRevealNext(t *testing.T) {
	var r Reveal
	assert.Nil(t, r.Next(0))

	r.Add("features", 0, 300, SectionOffset)
	r.Add("contact", 880, 240, SectionOffset)
	assert.Equal(t, "contact", r.Next(0).Name)
	assert.Equal(t, "contact", r.Next(500).Name)
	assert.Equal(t, "features", r.Next(880).Name)
}
