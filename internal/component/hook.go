package component

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/MatyiFKBT/botogram/internal/api"
)

// Descriptor is the introspection metadata attached to every wrapped hook:
// the qualified handler name ("component::function", or the bare function
// name when the component is unnamed) and a back-reference to the owning
// component. The back-reference is for logging and introspection only; it
// never controls the component's lifetime.
type Descriptor struct {
	Name      string
	Component *Component
}

// Hook pairs a handler with its descriptor. The dispatcher invokes hooks
// through Call and uses the descriptor for logging.
type Hook struct {
	Descriptor Descriptor
	fn         HandlerFunc
}

// Call invokes the wrapped handler.
func (h Hook) Call(chat *api.Chat, msg *api.Message) (bool, error) {
	return h.fn(chat, msg)
}

// Chain is the ordered set of hook groups of one component. The dispatcher
// must run the groups in field order: Before, Commands, Messages. Within a
// group, registration order is preserved.
type Chain struct {
	Before   []Hook
	Commands []Hook
	Messages []Hook
}

// funcName resolves a function value's bare name, stripping the package path
// and the "-fm" suffix of method values.
func funcName(fn interface{}) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	name := strings.TrimSuffix(f.Name(), "-fm")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
