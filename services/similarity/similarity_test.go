package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "both empty", a: "", b: "", want: 0},
		{name: "one empty", a: "", b: "abc", want: 3},
		{name: "identical", a: "round", b: "round", want: 0},
		{name: "single substitution", a: "round", b: "raund", want: 1},
		{name: "insertion", a: "sum", b: "sums", want: 1},
		{name: "classic kitten", a: "kitten", b: "sitting", want: 3},
		{name: "cyrillic", a: "округление", b: "округлить", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"", "abc"},
		{"округление", "округлить"},
		{"как округлить число", "как округлить значение"},
	}

	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]), "distance(%q,%q)", p[0], p[1])
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("", ""))
	assert.Equal(t, 1.0, Ratio("округление", "округление"))
	assert.Equal(t, 0.0, Ratio("", "abc"))

	// "kitten"/"sitting": distance 3, longest 7
	assert.InDelta(t, 4.0/7.0, Ratio("kitten", "sitting"), 1e-9)
}

func TestRatio_Symmetric(t *testing.T) {
	assert.Equal(t, Ratio("kitten", "sitting"), Ratio("sitting", "kitten"))
	assert.Equal(t, Ratio("a", "abcd"), Ratio("abcd", "a"))
}

func TestRatio_Range(t *testing.T) {
	pairs := [][2]string{
		{"совсем разные строки", "другой текст"},
		{"x", "yyyyyyyyyy"},
		{"как округлить число?", "как округлить число?"},
	}

	for _, p := range pairs {
		r := Ratio(p[0], p[1])
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}
