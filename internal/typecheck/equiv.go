package typecheck

import "github.com/funvibe/corelang/internal/ir"

// EquivKind is structural kind equivalence; it is simply Kind.Equal,
// exposed under this name for callers working at the type-checker layer.
func EquivKind(k1, k2 ir.Kind) bool {
	return k1.Equal(k2)
}

// Equiv reports whether t1 and t2 are structurally identical ignoring the
// display names of bound variables. Panics if the two types do not
// share a free-variable count — a precondition violation.
func Equiv(t1, t2 *ir.Type) bool {
	if t1.Free() != t2.Free() {
		panic("typecheck: Equiv called on types with differing free-variable counts")
	}
	return equivContent(t1, t2)
}

func equivContent(t1, t2 *ir.Type) bool {
	if t1.IsUnit() && t2.IsUnit() {
		return true
	}
	if t1.IsUnit() != t2.IsUnit() {
		return false
	}

	if i1, ok1 := t1.IsVar(); ok1 {
		i2, ok2 := t2.IsVar()
		return ok2 && i1 == i2
	}
	if _, ok2 := t2.IsVar(); ok2 {
		return false
	}

	if q1, p1, b1, ok1 := t1.AsQuantified(); ok1 {
		q2, p2, b2, ok2 := t2.AsQuantified()
		if !ok2 || q1 != q2 || !p1.Kind().Equal(p2.Kind()) {
			return false
		}
		return equivContent(b1, b2)
	}
	if _, _, _, ok2 := t2.AsQuantified(); ok2 {
		return false
	}

	if a1, ap1, r1, rp1, ok1 := t1.AsFunc(); ok1 {
		a2, ap2, r2, rp2, ok2 := t2.AsFunc()
		if !ok2 || ap1 != ap2 || rp1 != rp2 {
			return false
		}
		return equivContent(a1, a2) && equivContent(r1, r2)
	}
	if _, _, _, _, ok2 := t2.AsFunc(); ok2 {
		return false
	}

	if l1, r1, ok1 := t1.AsPair(); ok1 {
		l2, r2, ok2 := t2.AsPair()
		return ok2 && equivContent(l1, l2) && equivContent(r1, r2)
	}
	if _, _, ok2 := t2.AsPair(); ok2 {
		return false
	}

	if c1, p1, ok1 := t1.AsApp(); ok1 {
		c2, p2, ok2 := t2.AsApp()
		return ok2 && equivContent(c1, c2) && equivContent(p1, p2)
	}
	if _, _, ok2 := t2.AsApp(); ok2 {
		return false
	}

	if o1, d1, ok1 := t1.AsEquiv(); ok1 {
		o2, d2, ok2 := t2.AsEquiv()
		return ok2 && equivContent(o1, o2) && equivContent(d1, d2)
	}

	return false
}

// SubPhase reports whether child may stand in for parent on the
// static/dynamic lattice.
func SubPhase(child, parent ir.Phase) bool {
	return ir.SubPhase(child, parent)
}

// Subtype is the structural subtyping relation: contravariant in
// Func's argument (type and phase), covariant in its result; componentwise
// covariant for Pair; App and Equiv degenerate to Equiv (invariant).
func Subtype(child, parent *ir.Type) bool {
	if child.Free() != parent.Free() {
		panic("typecheck: Subtype called on types with differing free-variable counts")
	}

	if child.IsUnit() && parent.IsUnit() {
		return true
	}

	if ci, ok := child.IsVar(); ok {
		pi, ok2 := parent.IsVar()
		return ok2 && ci == pi
	}

	if cq, cp, cb, ok := child.AsQuantified(); ok {
		pq, pp, pb, ok2 := parent.AsQuantified()
		if !ok2 || cq != pq || !cp.Kind().Equal(pp.Kind()) {
			return false
		}
		return Subtype(cb, pb)
	}

	if ca, caPhase, cr, crPhase, ok := child.AsFunc(); ok {
		pa, paPhase, pr, prPhase, ok2 := parent.AsFunc()
		if !ok2 {
			return false
		}
		return Subtype(pa, ca) && SubPhase(paPhase, caPhase) && Subtype(cr, pr) && SubPhase(crPhase, prPhase)
	}

	if cl, cr, ok := child.AsPair(); ok {
		pl, pr, ok2 := parent.AsPair()
		return ok2 && Subtype(cl, pl) && Subtype(cr, pr)
	}

	if _, _, ok := child.AsApp(); ok {
		if _, _, ok2 := parent.AsApp(); ok2 {
			return Equiv(child, parent)
		}
		return false
	}

	if _, _, ok := child.AsEquiv(); ok {
		if _, _, ok2 := parent.AsEquiv(); ok2 {
			return Equiv(child, parent)
		}
		return false
	}

	return false
}
