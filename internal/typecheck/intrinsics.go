package typecheck

import "github.com/funvibe/corelang/internal/ir"

// intrinsics maps an intrinsic id to its closed (free=0), polymorphic
// signature. Closed so any Intrinsic node, wherever it occurs, can
// AccommodateFree its signature up to the ambient context's type arity.
var intrinsics = map[string]*ir.Type{
	// refl_equiv : forall {T} Equiv(T, T)
	"refl_equiv": ir.NewQuantified(ir.ForAll, ir.TypeParam{Name: "T", KindVal: ir.KType},
		ir.NewEquiv(ir.NewVar(1, 0), ir.NewVar(1, 0))),
}

// UnknownIntrinsicError reports a reference to an intrinsic id with no
// registered signature.
type UnknownIntrinsicError struct {
	ID string
}

func (e *UnknownIntrinsicError) Error() string {
	return "typecheck: unknown intrinsic " + e.ID
}
