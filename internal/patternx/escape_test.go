package patternx

import (
	"regexp"
	"testing"
)

func TestEscape_DotMatchesLiterally(t *testing.T) {
	t.Parallel()

	re, err := regexp.Compile("(?i)" + Escape("A."))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if re.MatchString("AB") {
		t.Fatal(`escaped "A." must not match "AB"`)
	}
	if !re.MatchString("xA.y") {
		t.Fatal(`escaped "A." must match literal "A."`)
	}
}

func TestEscape_EveryMetacharCompilesAndMatchesItself(t *testing.T) {
	t.Parallel()

	for _, c := range []string{"-", "[", "]", "/", "{", "}", "(", ")", "*", "+", "?", ".", `\`, "^", "$", "|"} {
		re, err := regexp.Compile(Escape(c))
		if err != nil {
			t.Fatalf("query %q must compile after escaping: %v", c, err)
		}
		if !re.MatchString("a" + c + "b") {
			t.Fatalf("query %q must match content containing it literally", c)
		}
	}
}

func TestEscape_LeavesPlainTextAlone(t *testing.T) {
	t.Parallel()

	if got := Escape("hello world 123"); got != "hello world 123" {
		t.Fatalf("plain text must be unchanged, got %q", got)
	}
	if got := Escape(""); got != "" {
		t.Fatalf("empty input must stay empty, got %q", got)
	}
}

func TestEscape_MixedInput(t *testing.T) {
	t.Parallel()

	if got := Escape("a.b*c"); got != `a\.b\*c` {
		t.Fatalf("got %q", got)
	}
}
