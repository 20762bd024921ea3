package wrap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNextWord(t *testing.T) {
	text := []byte(` With   many
	separators.
	`)
	var word []byte
	word, text = nextWord(text)
	if got, want := string(word), "With"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	word, text = nextWord(text)
	if got, want := string(word), "many"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	word, text = nextWord(text)
	if got, want := string(word), "separators."; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if len(text) != 0 {
		t.Fatalf("got %q, want nil", text)
	}
}

func TestWrap(t *testing.T) {
	text := []byte(`Lorem ipsum dolor sit amet, consectetur adipiscing elit,
sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.`)
	testCases := []struct {
		prefix string
		max    int
		want   string
	}{
		{"", 40, `Lorem ipsum dolor sit amet, consectetur
adipiscing elit, sed do eiusmod tempor
incididunt ut labore et dolore magna
aliqua.`},
		{"", 1, `Lorem
ipsum
dolor
sit
amet,
consectetur
adipiscing
elit,
sed
do
eiusmod
tempor
incididunt
ut
labore
et
dolore
magna
aliqua.`},
		{"> ", 40, `> Lorem ipsum dolor sit amet,
> consectetur adipiscing elit, sed do
> eiusmod tempor incididunt ut labore et
> dolore magna aliqua.`},
		{"> ", 20, `> Lorem ipsum dolor
> sit amet,
> consectetur
> adipiscing elit,
> sed do eiusmod
> tempor incididunt
> ut labore et
> dolore magna
> aliqua.`},
	}
	for _, tc := range testCases {
		wrapped := Wrap(text, []byte(tc.prefix), tc.max)
		if d := cmp.Diff(tc.want, string(wrapped)); d != "" {
			t.Errorf("prefix %q max %d: %s", tc.prefix, tc.max, d)
		}
	}
}
