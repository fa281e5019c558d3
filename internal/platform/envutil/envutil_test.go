package envutil

import (
	"testing"
	"time"
)

func TestParsersFallBackToDefault(t *testing.T) {
	t.Setenv("ENVUTIL_INT", "nope")
	t.Setenv("ENVUTIL_FLOAT", "")
	t.Setenv("ENVUTIL_BOOL", "maybe")
	t.Setenv("ENVUTIL_DUR", "soon")

	if got := Int("ENVUTIL_INT", 7); got != 7 {
		t.Fatalf("Int=%d", got)
	}
	if got := Float("ENVUTIL_FLOAT", 0.5); got != 0.5 {
		t.Fatalf("Float=%v", got)
	}
	if got := Bool("ENVUTIL_BOOL", true); !got {
		t.Fatalf("Bool=%v", got)
	}
	if got := Duration("ENVUTIL_DUR", time.Minute); got != time.Minute {
		t.Fatalf("Duration=%v", got)
	}
}

func TestParsersReadValues(t *testing.T) {
	t.Setenv("ENVUTIL_STR", "  hi ")
	t.Setenv("ENVUTIL_INT", "12")
	t.Setenv("ENVUTIL_BOOL", "off")
	t.Setenv("ENVUTIL_DUR", "90")
	t.Setenv("ENVUTIL_DUR2", "250ms")

	if got := String("ENVUTIL_STR", "x"); got != "hi" {
		t.Fatalf("String=%q", got)
	}
	if got := Int("ENVUTIL_INT", 0); got != 12 {
		t.Fatalf("Int=%d", got)
	}
	if got := Bool("ENVUTIL_BOOL", true); got {
		t.Fatalf("Bool=%v", got)
	}
	if got := Duration("ENVUTIL_DUR", 0); got != 90*time.Second {
		t.Fatalf("Duration=%v", got)
	}
	if got := Duration("ENVUTIL_DUR2", 0); got != 250*time.Millisecond {
		t.Fatalf("Duration=%v", got)
	}
}

func TestList(t *testing.T) {
	t.Setenv("ENVUTIL_LIST", " a, ,b ,")
	got := List("ENVUTIL_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List=%q", got)
	}
	t.Setenv("ENVUTIL_LIST", " , ")
	if got := List("ENVUTIL_LIST", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("List=%q want default", got)
	}
}
