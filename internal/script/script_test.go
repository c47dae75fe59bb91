package script

import (
	"strings"
	"testing"
)

func TestNoop(t *testing.T) {
	if got := Noop("簡体"); got != "簡体" {
		t.Fatalf("Noop changed input: %q", got)
	}
}

func TestChain(t *testing.T) {
	upper := func(s string) string { return strings.ToUpper(s) }
	suffix := func(s string) string { return s + "!" }

	got := Chain(upper, suffix)("abc")
	if got != "ABC!" {
		t.Fatalf("Chain order wrong: got %q, want %q", got, "ABC!")
	}
}

func TestChainEmpty(t *testing.T) {
	if got := Chain()("x"); got != "x" {
		t.Fatalf("empty Chain changed input: %q", got)
	}
}
