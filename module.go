package scriptbox

import (
	"github.com/reglet-dev/scriptbox/internal/native"
)

// Module is a compiled, not yet evaluated, module. Like values it is bound
// to the With invocation that compiled it.
type Module struct {
	scope *scope
	inner *native.Module
}

// Name returns the name the module was compiled under.
func (m Module) Name() string {
	m.scope.ensure("Module.Name")
	return m.inner.Name()
}
