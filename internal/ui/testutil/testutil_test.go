package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "on air", StripANSI("\x1b[1;38;5;42mon air\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestMeasureWidth(t *testing.T) {
	assert.Equal(t, 3, MeasureWidth("\x1b[31mabc\x1b[0m"))
	assert.Equal(t, 4, MeasureWidth("日本"))
}

func TestFindLine(t *testing.T) {
	out := "first\n\x1b[1msecond line\x1b[0m\nthird"

	assert.Equal(t, "second line", FindLine(out, "second"))
	assert.Empty(t, FindLine(out, "missing"))
}

func TestMaxLineWidth(t *testing.T) {
	assert.Equal(t, 5, MaxLineWidth("ab\nabcde\n\x1b[1mabc\x1b[0m"))
	assert.Zero(t, MaxLineWidth(""))
}

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" ", " "},
		{"ctrl+c", "ctrl+c"},
		{"p", "p"},
		{"+", "+"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in).String())
		})
	}
}
