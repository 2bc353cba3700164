package ir_test

import (
	"testing"

	"github.com/funvibe/corelang/internal/ir"
	. "github.com/funvibe/corelang/internal/testutil"
)

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic, got none", name)
		}
	}()
	f()
}

func TestInvalidConstruction(t *testing.T) {
	mustPanic(t, "invalid_var_1", func() { Var(0, 0) })
	mustPanic(t, "invalid_var_2", func() { Var(1, 1) })
	mustPanic(t, "invalid_var_3", func() { Var(1, 2) })
	mustPanic(t, "invalid_exists", func() { Exists(Exists(Var(1, 0))) })
	mustPanic(t, "invalid_func", func() { Func(Var(1, 0), Var(2, 0)) })
	mustPanic(t, "invalid_func_forall", func() { FuncForAll(2, Var(1, 0), Var(1, 0)) })
	mustPanic(t, "invalid_pair", func() { Pair(Var(1, 0), Var(2, 0)) })
	mustPanic(t, "invalid_app", func() { App(Var(1, 0), Var(2, 0)) })
	mustPanic(t, "invalid_equiv", func() { Equiv(Var(1, 0), Var(2, 0)) })
}

func TestFree(t *testing.T) {
	if Unit(0).Free() != 0 || Unit(5).Free() != 5 {
		t.Fatal("free_unit")
	}
	if Var(1, 0).Free() != 1 || Var(10, 5).Free() != 10 {
		t.Fatal("free_var")
	}
	if Exists(Var(1, 0)).Free() != 0 {
		t.Fatal("free_exists 1")
	}
	if Exists(Var(2, 0)).Free() != 1 {
		t.Fatal("free_exists 2")
	}
	if Exists(Var(3, 2)).Free() != 2 {
		t.Fatal("free_exists 3")
	}
	if Exists(Exists(Var(2, 1))).Free() != 0 {
		t.Fatal("free_exists nested 1")
	}
	if Exists(Exists(Var(5, 1))).Free() != 3 {
		t.Fatal("free_exists nested 2")
	}
	if Func(Var(2, 0), Var(2, 1)).Free() != 2 {
		t.Fatal("free_func 1")
	}
	if Func(Var(4, 3), Var(4, 0)).Free() != 4 {
		t.Fatal("free_func 2")
	}
	if FuncForAll(1, Var(1, 0), Var(1, 0)).Free() != 0 {
		t.Fatal("free_func_forall 1")
	}
	if FuncForAll(1, Var(2, 0), Var(2, 1)).Free() != 1 {
		t.Fatal("free_func_forall 2")
	}
	if FuncForAll(2, Var(2, 0), Var(2, 1)).Free() != 0 {
		t.Fatal("free_func_forall 3")
	}
	if Pair(Var(2, 0), Var(2, 1)).Free() != 2 {
		t.Fatal("free_pair 1")
	}
	if Pair(Var(4, 3), Var(4, 0)).Free() != 4 {
		t.Fatal("free_pair 2")
	}
	if App(Var(2, 0), Var(2, 1)).Free() != 2 {
		t.Fatal("free_app 1")
	}
	if App(Var(4, 3), Var(4, 0)).Free() != 4 {
		t.Fatal("free_app 2")
	}
	if Equiv(Var(2, 0), Var(2, 1)).Free() != 2 {
		t.Fatal("free_equiv 1")
	}
	if Equiv(Var(4, 3), Var(4, 0)).Free() != 4 {
		t.Fatal("free_equiv 2")
	}
}

func TestAccommodateFree(t *testing.T) {
	if !Unit(0).AccommodateFree(0).Equal(Unit(0)) {
		t.Fatal("accommodate_free_unit 1")
	}
	if !Unit(10).AccommodateFree(10).Equal(Unit(10)) {
		t.Fatal("accommodate_free_unit 2")
	}
	if !Unit(3).AccommodateFree(5).Equal(Unit(5)) {
		t.Fatal("accommodate_free_unit 3")
	}
	if !Unit(0).AccommodateFree(5).Equal(Unit(5)) {
		t.Fatal("accommodate_free_unit 4")
	}

	if !Var(1, 0).AccommodateFree(1).Equal(Var(1, 0)) {
		t.Fatal("accommodate_free_var 1")
	}
	if !Var(1, 0).AccommodateFree(2).Equal(Var(2, 0)) {
		t.Fatal("accommodate_free_var 2")
	}
	if !Var(2, 0).AccommodateFree(4).Equal(Var(4, 0)) {
		t.Fatal("accommodate_free_var 3")
	}
	if !Var(2, 1).AccommodateFree(4).Equal(Var(4, 1)) {
		t.Fatal("accommodate_free_var 4")
	}

	if !Exists(Var(1, 0)).AccommodateFree(0).Equal(Exists(Var(1, 0))) {
		t.Fatal("accommodate_free_exists 1")
	}
	if !Exists(Var(1, 0)).AccommodateFree(3).Equal(Exists(Var(4, 3))) {
		t.Fatal("accommodate_free_exists 2")
	}
	if !Exists(Var(2, 0)).AccommodateFree(1).Equal(Exists(Var(2, 0))) {
		t.Fatal("accommodate_free_exists 3")
	}
	if !Exists(Var(2, 0)).AccommodateFree(5).Equal(Exists(Var(6, 0))) {
		t.Fatal("accommodate_free_exists 4")
	}
	if !Exists(Var(2, 1)).AccommodateFree(1).Equal(Exists(Var(2, 1))) {
		t.Fatal("accommodate_free_exists 5")
	}
	if !Exists(Var(2, 1)).AccommodateFree(5).Equal(Exists(Var(6, 5))) {
		t.Fatal("accommodate_free_exists 6")
	}
	got := Exists(Exists(Pair(Pair(Var(3, 0), Var(3, 1)), Var(3, 2)))).AccommodateFree(2)
	want := Exists(Exists(Pair(Pair(Var(4, 0), Var(4, 2)), Var(4, 3))))
	if !got.Equal(want) {
		t.Fatalf("accommodate_free_exists nested: got %s want %s", got, want)
	}

	if !Func(Var(2, 0), Var(2, 1)).AccommodateFree(4).Equal(Func(Var(4, 0), Var(4, 1))) {
		t.Fatal("accommodate_free_func")
	}

	if !FuncForAll(1, Var(2, 0), Var(2, 1)).AccommodateFree(2).Equal(FuncForAll(1, Var(3, 0), Var(3, 2))) {
		t.Fatal("accommodate_free_func_forall 1")
	}
	got2 := FuncForAll(1, Pair(Var(2, 0), Var(2, 1)), FuncForAll(2, Pair(Var(4, 0), Var(4, 1)), Pair(Var(4, 2), Var(4, 3)))).AccommodateFree(3)
	want2 := FuncForAll(1, Pair(Var(4, 0), Var(4, 3)), FuncForAll(2, Pair(Var(6, 0), Var(6, 3)), Pair(Var(6, 4), Var(6, 5))))
	if !got2.Equal(want2) {
		t.Fatalf("accommodate_free_func_forall 2: got %s want %s", got2, want2)
	}

	if !Pair(Var(2, 0), Var(2, 1)).AccommodateFree(4).Equal(Pair(Var(4, 0), Var(4, 1))) {
		t.Fatal("accommodate_free_pair")
	}
	if !App(Var(2, 0), Var(2, 1)).AccommodateFree(4).Equal(App(Var(4, 0), Var(4, 1))) {
		t.Fatal("accommodate_free_app")
	}
	if !Equiv(Var(2, 0), Var(2, 1)).AccommodateFree(4).Equal(Equiv(Var(4, 0), Var(4, 1))) {
		t.Fatal("accommodate_free_equiv")
	}
}

func TestSubstSimple(t *testing.T) {
	if !Unit(4).Subst([]*ir.Type{Var(2, 0), Var(2, 1)}).Equal(Unit(2)) {
		t.Fatal("subst_simple unit")
	}
	if !Var(2, 0).Subst([]*ir.Type{Var(1, 0)}).Equal(Var(1, 0)) {
		t.Fatal("subst_simple var 1")
	}
	if !Var(2, 1).Subst([]*ir.Type{Var(1, 0)}).Equal(Var(1, 0)) {
		t.Fatal("subst_simple var 2")
	}

	got := Pair(Pair(Var(4, 1), Var(4, 2)), Var(4, 3)).Subst([]*ir.Type{Var(2, 0), Var(2, 1)})
	want := Pair(Pair(Var(2, 1), Var(2, 0)), Var(2, 1))
	if !got.Equal(want) {
		t.Fatalf("subst_simple pair: got %s want %s", got, want)
	}

	got2 := App(App(Var(4, 1), Var(4, 2)), Var(4, 3)).Subst([]*ir.Type{Var(2, 0), Var(2, 1)})
	want2 := App(App(Var(2, 1), Var(2, 0)), Var(2, 1))
	if !got2.Equal(want2) {
		t.Fatalf("subst_simple app: got %s want %s", got2, want2)
	}

	got3 := Pair(Pair(Var(4, 1), Var(4, 2)), Var(4, 3)).Subst([]*ir.Type{Pair(Var(2, 0), Var(2, 0)), Var(2, 1)})
	want3 := Pair(Pair(Var(2, 1), Pair(Var(2, 0), Var(2, 0))), Var(2, 1))
	if !got3.Equal(want3) {
		t.Fatalf("subst_simple pair-of-pair: got %s want %s", got3, want3)
	}

	got4 := Func(Func(Var(4, 1), Var(4, 2)), Var(4, 3)).Subst([]*ir.Type{Pair(Var(2, 0), Var(2, 0)), Var(2, 1)})
	want4 := Func(Func(Var(2, 1), Pair(Var(2, 0), Var(2, 0))), Var(2, 1))
	if !got4.Equal(want4) {
		t.Fatalf("subst_simple func: got %s want %s", got4, want4)
	}
}

func TestSubstExists(t *testing.T) {
	got := Exists(Pair(Var(3, 1), Var(3, 2))).Subst([]*ir.Type{Pair(Var(1, 0), Var(1, 0))})
	want := Exists(Pair(Pair(Var(2, 0), Var(2, 0)), Var(2, 1)))
	if !got.Equal(want) {
		t.Fatalf("subst_exists 1: got %s want %s", got, want)
	}

	got2 := Pair(Var(2, 0), Var(2, 1)).Subst([]*ir.Type{Exists(Var(2, 1))})
	want2 := Pair(Var(1, 0), Exists(Var(2, 1)))
	if !got2.Equal(want2) {
		t.Fatalf("subst_exists 2: got %s want %s", got2, want2)
	}

	got3 := Exists(Pair(Var(3, 0), Pair(Var(3, 1), Var(3, 2)))).Subst([]*ir.Type{Exists(Pair(Var(2, 0), Var(2, 1)))})
	want3 := Exists(Pair(Var(2, 0), Pair(Exists(Pair(Var(3, 0), Var(3, 2))), Var(2, 1))))
	if !got3.Equal(want3) {
		t.Fatalf("subst_exists 3: got %s want %s", got3, want3)
	}
}

func TestSubstFuncForAll(t *testing.T) {
	got := FuncForAll(1, Var(3, 1), Var(3, 2)).Subst([]*ir.Type{Var(1, 0)})
	want := FuncForAll(1, Var(2, 0), Var(2, 1))
	if !got.Equal(want) {
		t.Fatalf("subst_func_forall 1: got %s want %s", got, want)
	}

	got2 := FuncForAll(1, Var(3, 2), Var(3, 1)).Subst([]*ir.Type{Var(1, 0)})
	want2 := FuncForAll(1, Var(2, 1), Var(2, 0))
	if !got2.Equal(want2) {
		t.Fatalf("subst_func_forall 2: got %s want %s", got2, want2)
	}

	got3 := FuncForAll(1, Var(2, 0), Var(2, 1)).Subst([]*ir.Type{FuncForAll(1, Var(1, 0), Var(1, 0))})
	want3 := FuncForAll(1, FuncForAll(1, Var(2, 1), Var(2, 1)), Var(1, 0))
	if !got3.Equal(want3) {
		t.Fatalf("subst_func_forall 3: got %s want %s", got3, want3)
	}

	got4 := FuncForAll(1, Var(3, 1), Var(3, 2)).Subst([]*ir.Type{FuncForAll(1, Var(2, 0), Var(2, 1))})
	want4 := FuncForAll(1, FuncForAll(1, Var(3, 0), Var(3, 2)), Var(2, 1))
	if !got4.Equal(want4) {
		t.Fatalf("subst_func_forall 4: got %s want %s", got4, want4)
	}
}
