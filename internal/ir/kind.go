package ir

import "strings"

// kindTag discriminates Kind variants.
type kindTag int

const (
	kType kindTag = iota
	kPlace
	kVersion
	kConstructor
)

// Kind is one of Type, Place, Version, or Constructor{params,result}.
// Kind equivalence is structural (EqualKind below), never by identity.
type Kind struct {
	tag    kindTag
	params []Kind
	result *Kind
}

// KType is the kind of ordinary types.
var KType = Kind{tag: kType}

// KPlace is the kind of memory-place types.
var KPlace = Kind{tag: kPlace}

// KVersion is the kind of version types.
var KVersion = Kind{tag: kVersion}

// NewConstructorKind builds a type-constructor kind. params must be
// non-empty.
func NewConstructorKind(params []Kind, result Kind) Kind {
	if len(params) == 0 {
		panic("ir: Constructor kind requires at least one parameter")
	}
	cp := append([]Kind(nil), params...)
	return Kind{tag: kConstructor, params: cp, result: &result}
}

// AsConstructor returns the parameter and result kinds if k is a
// Constructor kind.
func (k Kind) AsConstructor() (params []Kind, result Kind, ok bool) {
	if k.tag != kConstructor {
		return nil, Kind{}, false
	}
	return k.params, *k.result, true
}

// IsType reports whether k is the base Type kind.
func (k Kind) IsType() bool { return k.tag == kType }

// Equal reports structural kind equivalence.
func (k Kind) Equal(other Kind) bool {
	if k.tag != other.tag {
		return false
	}
	if k.tag != kConstructor {
		return true
	}
	if len(k.params) != len(other.params) {
		return false
	}
	for i := range k.params {
		if !k.params[i].Equal(other.params[i]) {
			return false
		}
	}
	return k.result.Equal(*other.result)
}

func (k Kind) String() string {
	switch k.tag {
	case kType:
		return "Type"
	case kPlace:
		return "Place"
	case kVersion:
		return "Version"
	case kConstructor:
		parts := make([]string, len(k.params))
		for i, p := range k.params {
			parts[i] = p.String()
		}
		return "(" + strings.Join(parts, ", ") + ") -> " + k.result.String()
	default:
		return "<?kind>"
	}
}
