package modules

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"
)

// ArgType represents the expected type of a function argument.
type ArgType int

const (
	String ArgType = iota
	Int
	Float
	Bool
	Any
)

func (t ArgType) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "any"
	}
}

// FuncDef describes a function exposed by a module.
// The implementation must be a method named after the function in PascalCase
// on the module's Impl value (e.g. "count_doubles" is served by CountDoubles),
// taking typed parameters matching Args.
type FuncDef struct {
	// Name is the exported function name (e.g. "count_doubles").
	Name string
	// Args lists the expected typed arguments. Call converts host values to
	// these types before invoking the implementation.
	Args []ArgType
	// Variadic, when true, passes remaining args beyond Args as ...interface{}.
	// The implementation method should accept extra ...interface{} as its last parameter.
	Variadic bool
	// Doc is a one-line description shown by the doc command.
	Doc string
}

// Module represents a native module that can be called from the host runtime.
type Module struct {
	// Name is the import name (e.g. "string_doubles").
	Name string
	// Type is the Go type name of Impl, used in documentation.
	Type string
	// Doc is a one-line module description.
	Doc string
	// Funcs describes the functions this module exposes.
	Funcs []FuncDef
	// Impl is the value whose methods implement Funcs.
	Impl interface{}
}

var (
	ErrUnknownModule  = errors.New("unknown module")
	ErrUnknownFunc    = errors.New("unknown function")
	ErrArgCount       = errors.New("wrong number of arguments")
	ErrArgType        = errors.New("wrong argument type")
	ErrInvalidText    = errors.New("argument is not valid UTF-8 text")
	ErrResultOverflow = errors.New("result does not fit in an integer")
)

// CallError reports a failure at the host call boundary.
type CallError struct {
	Module string
	Func   string
	Err    error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Module, e.Func, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

var registry = make(map[string]*Module)

// Register adds a module to the global registry. It panics if a declared
// function has no matching method on m.Impl, or if the method's parameters
// do not accept the declared Args.
func Register(m *Module) {
	if m.Impl != nil {
		for _, f := range m.Funcs {
			fn, ok := method(m, f)
			if !ok {
				panic(fmt.Sprintf("modules: %s has no method %s for %s.%s",
					m.Type, toPascalCase(f.Name), m.Name, f.Name))
			}
			if err := checkSignature(fn.Type(), f); err != nil {
				panic(fmt.Sprintf("modules: %s.%s does not match %s.%s: %v",
					m.Type, toPascalCase(f.Name), m.Name, f.Name, err))
			}
		}
	}
	registry[m.Name] = m
}

// argTypes maps each ArgType to the Go type convertArg produces for it.
var argTypes = map[ArgType]reflect.Type{
	String: reflect.TypeOf(""),
	Int:    reflect.TypeOf(0),
	Float:  reflect.TypeOf(0.0),
	Bool:   reflect.TypeOf(false),
	Any:    reflect.TypeOf((*interface{})(nil)).Elem(),
}

// checkSignature reports whether a method of type ft can be called with the
// values Call builds for f.
func checkSignature(ft reflect.Type, f FuncDef) error {
	want := len(f.Args)
	if f.Variadic {
		want++
	}
	if ft.NumIn() != want {
		return fmt.Errorf("method takes %d parameters, declared %d", ft.NumIn(), want)
	}
	if ft.IsVariadic() != f.Variadic {
		return fmt.Errorf("method variadic = %t, declared %t", ft.IsVariadic(), f.Variadic)
	}
	for i, a := range f.Args {
		if in := ft.In(i); !argTypes[a].AssignableTo(in) {
			return fmt.Errorf("parameter %d is %s, declared %s", i, in, a)
		}
	}
	if f.Variadic {
		if elem := ft.In(want - 1).Elem(); !argTypes[Any].AssignableTo(elem) {
			return fmt.Errorf("variadic parameter is ...%s, want ...interface{}", elem)
		}
	}
	return nil
}

// Get returns a registered module by name.
func Get(name string) (*Module, bool) {
	m, ok := registry[name]
	return m, ok
}

// IsModule returns true if name is a registered module.
func IsModule(name string) bool {
	_, ok := registry[name]
	return ok
}

// LookupFunc resolves a module function to its qualified name.
func LookupFunc(module, funcName string) (string, bool) {
	m, ok := registry[module]
	if !ok {
		return "", false
	}
	if _, ok := m.Func(funcName); !ok {
		return "", false
	}
	return m.Name + "." + funcName, true
}

// Names returns sorted names of all registered modules.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Func returns the definition of the named function.
func (m *Module) Func(name string) (FuncDef, bool) {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return FuncDef{}, false
}

// SplitQualified splits "module.func" into its parts.
func SplitQualified(name string) (module, fn string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}
	return name[:i], name[i+1:], true
}

// Call invokes module.funcName with host values. Arguments are checked and
// converted according to the function's Args, and the result is converted
// back to a host value: unsigned and sized integers become int, floats
// become float64.
func Call(module, funcName string, args ...interface{}) (interface{}, error) {
	fail := func(err error) (interface{}, error) {
		return nil, &CallError{Module: module, Func: funcName, Err: err}
	}

	m, ok := registry[module]
	if !ok {
		return fail(ErrUnknownModule)
	}
	f, ok := m.Func(funcName)
	if !ok {
		return fail(ErrUnknownFunc)
	}
	fn, ok := method(m, f)
	if !ok {
		return fail(fmt.Errorf("%w: no implementation", ErrUnknownFunc))
	}

	if len(args) < len(f.Args) || (!f.Variadic && len(args) > len(f.Args)) {
		want := fmt.Sprintf("%d", len(f.Args))
		if f.Variadic {
			want = "at least " + want
		}
		return fail(fmt.Errorf("%w: got %d, want %s", ErrArgCount, len(args), want))
	}

	in := make([]reflect.Value, 0, len(args))
	for i, t := range f.Args {
		v, err := convertArg(args[i], t)
		if err != nil {
			return fail(fmt.Errorf("argument %d: %w", i+1, err))
		}
		in = append(in, v)
	}
	for i := len(f.Args); i < len(args); i++ {
		in = append(in, reflect.ValueOf(&args[i]).Elem())
	}

	out := fn.Call(in)
	return marshalResult(out, fail)
}

func method(m *Module, f FuncDef) (reflect.Value, bool) {
	if m.Impl == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(m.Impl).MethodByName(toPascalCase(f.Name))
	return v, v.IsValid()
}

func convertArg(arg interface{}, t ArgType) (reflect.Value, error) {
	switch t {
	case String:
		var s string
		switch v := arg.(type) {
		case string:
			s = v
		case []byte:
			s = string(v)
		default:
			return reflect.Value{}, fmt.Errorf("%w: expected string, got %s", ErrArgType, typeName(arg))
		}
		if !utf8.ValidString(s) {
			return reflect.Value{}, ErrInvalidText
		}
		return reflect.ValueOf(s), nil
	case Int:
		switch v := arg.(type) {
		case int:
			return reflect.ValueOf(v), nil
		case int64:
			return reflect.ValueOf(int(v)), nil
		case float64:
			if v == math.Trunc(v) {
				return reflect.ValueOf(int(v)), nil
			}
		}
		return reflect.Value{}, fmt.Errorf("%w: expected int, got %s", ErrArgType, typeName(arg))
	case Float:
		switch v := arg.(type) {
		case float64:
			return reflect.ValueOf(v), nil
		case int:
			return reflect.ValueOf(float64(v)), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: expected float, got %s", ErrArgType, typeName(arg))
	case Bool:
		if v, ok := arg.(bool); ok {
			return reflect.ValueOf(v), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: expected bool, got %s", ErrArgType, typeName(arg))
	default:
		return reflect.ValueOf(&arg).Elem(), nil
	}
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func marshalResult(out []reflect.Value, fail func(error) (interface{}, error)) (interface{}, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return fail(out[n-1].Interface().(error))
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, nil
	}

	v := out[0]
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt {
			return fail(fmt.Errorf("%w: %d", ErrResultOverflow, u))
		}
		return int(u), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		if i > math.MaxInt || i < math.MinInt {
			return fail(fmt.Errorf("%w: %d", ErrResultOverflow, i))
		}
		return int(i), nil
	case reflect.Float32:
		return v.Float(), nil
	case reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return marshalResult([]reflect.Value{v.Elem()}, fail)
	}
	return v.Interface(), nil
}

func typeName(v interface{}) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// MethodName returns the Go method name implementing the function funcName.
func MethodName(funcName string) string {
	return toPascalCase(funcName)
}

// toPascalCase converts a snake_case name to PascalCase.
// "count_doubles" → "CountDoubles", "red" → "Red"
func toPascalCase(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}
