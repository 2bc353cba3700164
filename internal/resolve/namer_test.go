package resolve_test

import (
	"testing"

	"github.com/funvibe/corelang/internal/resolve"
)

func TestNamerAddSimple(t *testing.T) {
	n := resolve.NewNamer()
	if n.IndexCount() != 0 {
		t.Fatal("expected empty namer")
	}

	if got := n.AddName("foo"); got != "foo" {
		t.Fatalf("got %q want foo", got)
	}
	if got := n.GetName(0); got != "foo" {
		t.Fatalf("get 0: got %q", got)
	}

	if got := n.AddName("bar"); got != "bar" {
		t.Fatalf("got %q want bar", got)
	}
	if n.GetName(0) != "foo" || n.GetName(1) != "bar" {
		t.Fatal("names shifted unexpectedly")
	}
}

func TestNamerScoped(t *testing.T) {
	n := resolve.NewNamer()
	n.AddName("foo")

	n.PushScope()
	if n.GetName(0) != "foo" {
		t.Fatal("foo lost before scope add")
	}
	n.AddName("bar")
	if n.GetName(1) != "bar" {
		t.Fatal("bar not recorded")
	}
	n.PopScope()

	if n.GetName(0) != "foo" {
		t.Fatal("foo lost after pop")
	}
	n.AddName("baz")
	if n.GetName(0) != "foo" || n.GetName(1) != "baz" {
		t.Fatal("post-pop state wrong")
	}
}

func TestNamerCollision(t *testing.T) {
	n := resolve.NewNamer()
	if got := n.AddName("foo"); got != "foo" {
		t.Fatalf("got %q", got)
	}
	if got := n.AddName("foo"); got != "foo#1" {
		t.Fatalf("got %q want foo#1", got)
	}
	if got := n.AddName("bar"); got != "bar" {
		t.Fatalf("got %q want bar", got)
	}
	if got := n.AddName("foo"); got != "foo#2" {
		t.Fatalf("got %q want foo#2", got)
	}
	for i, want := range []string{"foo", "foo#1", "bar", "foo#2"} {
		if n.GetName(i) != want {
			t.Fatalf("index %d: got %q want %q", i, n.GetName(i), want)
		}
	}
}

func TestNamerScopedCollision(t *testing.T) {
	n := resolve.NewNamer()
	n.AddName("foo")
	n.AddName("foo")

	n.PushScope()
	n.AddName("bar")
	if got := n.AddName("foo"); got != "foo#2" {
		t.Fatalf("got %q want foo#2", got)
	}
	n.PopScope()

	n.AddName("baz")
	if got := n.AddName("foo"); got != "foo#2" {
		t.Fatalf("post-pop foo collision: got %q want foo#2", got)
	}
	if got := n.AddName("bar"); got != "bar" {
		t.Fatalf("post-pop bar: got %q want bar", got)
	}
	want := []string{"foo", "foo#1", "baz", "foo#2", "bar"}
	for i, w := range want {
		if n.GetName(i) != w {
			t.Fatalf("index %d: got %q want %q", i, n.GetName(i), w)
		}
	}
}

func TestNamerQuoted(t *testing.T) {
	n := resolve.NewNamer()
	if got := n.AddName(""); got != "``" {
		t.Fatalf("got %q want ``", got)
	}
	if got := n.AddName(""); got != "``#1" {
		t.Fatalf("got %q want ``#1", got)
	}
	if got := n.AddName("forall"); got != "`forall`" {
		t.Fatalf("got %q want `forall`", got)
	}
	if got := n.AddName("hello world"); got != "`hello world`" {
		t.Fatalf("got %q want `hello world`", got)
	}
	if got := n.AddName("\\"); got != "`\\\\`" {
		t.Fatalf("got %q want `\\\\`", got)
	}
	if got := n.AddName("Hello \\ world `"); got != "`Hello \\\\ world \\``" {
		t.Fatalf("got %q want `Hello \\\\ world \\``", got)
	}
	if got := n.AddName("forall"); got != "`forall`#1" {
		t.Fatalf("got %q want `forall`#1", got)
	}
	if got := n.AddName("equiv"); got != "`equiv`" {
		t.Fatalf("got %q want `equiv`", got)
	}
	if got := n.AddName("cast"); got != "`cast`" {
		t.Fatalf("got %q want `cast`", got)
	}

	want := []string{"``", "``#1", "`forall`", "`hello world`", "`\\\\`", "`Hello \\\\ world \\``", "`forall`#1", "`equiv`", "`cast`"}
	for i, w := range want {
		if n.GetName(i) != w {
			t.Fatalf("index %d: got %q want %q", i, n.GetName(i), w)
		}
	}
}

func TestNamerPopScopeUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on scope underflow")
		}
	}()
	resolve.NewNamer().PopScope()
}
