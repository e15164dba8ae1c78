package scriptbox

import (
	"fmt"
	"strconv"
	"strings"

	serrors "github.com/reglet-dev/scriptbox/errors"
)

// Atom is an interned property key, created from a host string or integer
// and consumed by object get/set. Atoms are scoped like values: they are
// valid only inside the With invocation that created them.
type Atom struct {
	scope *scope
	key   string
}

// IntoAtom is implemented by host types that can serve as property keys.
type IntoAtom interface {
	IntoAtom(x *Ctx) (Atom, error)
}

// NewAtom interns a property key. Accepted key types are strings, signed and
// unsigned integers, Atom itself and IntoAtom implementations.
func (x *Ctx) NewAtom(key any) (Atom, error) {
	x.scope.ensure("NewAtom")
	switch k := key.(type) {
	case Atom:
		k.scope.ensureSame(x.scope, "NewAtom")
		return k, nil
	case IntoAtom:
		return k.IntoAtom(x)
	case string:
		if strings.ContainsRune(k, 0) {
			return Atom{}, &serrors.InvalidStringError{Input: k}
		}
		return Atom{scope: x.scope, key: k}, nil
	case int:
		return Atom{scope: x.scope, key: strconv.Itoa(k)}, nil
	case int32:
		return Atom{scope: x.scope, key: strconv.FormatInt(int64(k), 10)}, nil
	case int64:
		return Atom{scope: x.scope, key: strconv.FormatInt(k, 10)}, nil
	case uint32:
		return Atom{scope: x.scope, key: strconv.FormatUint(uint64(k), 10)}, nil
	case uint64:
		return Atom{scope: x.scope, key: strconv.FormatUint(k, 10)}, nil
	default:
		return Atom{}, &serrors.IntoJsError{From: fmt.Sprintf("%T", key), To: "atom"}
	}
}

// String returns the interned key text.
func (a Atom) String() string {
	a.scope.ensure("Atom.String")
	return a.key
}
