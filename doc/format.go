// Package doc renders documentation for registered modules.
package doc

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rubiojr/stringdoubles/modules"
)

// FormatSymbol formats a single symbol lookup result.
func FormatSymbol(docStr, signature string) string {
	var sb strings.Builder
	sb.WriteString(signature)
	sb.WriteString("\n")
	if docStr != "" {
		sb.WriteString("    ")
		sb.WriteString(strings.ReplaceAll(docStr, "\n", "\n    "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatModule formats a module for terminal display.
func FormatModule(m *modules.Module) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("module %s", m.Name))
	sb.WriteString("\n")
	if m.Doc != "" {
		sb.WriteString("    ")
		sb.WriteString(m.Doc)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for _, f := range m.Funcs {
		sb.WriteString(FormatSymbol(f.Doc, FuncSignature(m, f)))
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatAllModules lists all registered modules.
func FormatAllModules() string {
	var sb strings.Builder

	sb.WriteString("Modules:\n")
	for _, name := range modules.Names() {
		m, _ := modules.Get(name)
		line := fmt.Sprintf("  %-16s", name)
		if m.Doc != "" {
			line += " " + m.Doc
		}
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Lookup resolves "module" or "module.func" to formatted documentation.
func Lookup(name string) (string, error) {
	if m, ok := modules.Get(name); ok {
		return FormatModule(m), nil
	}
	modName, fn, ok := modules.SplitQualified(name)
	if !ok {
		return "", fmt.Errorf("no documentation for %q", name)
	}
	m, ok := modules.Get(modName)
	if !ok {
		return "", fmt.Errorf("unknown module %q", modName)
	}
	f, ok := m.Func(fn)
	if !ok {
		return "", fmt.Errorf("module %s has no function %q", modName, fn)
	}
	return FormatSymbol(f.Doc, FuncSignature(m, f)), nil
}

// FuncSignature renders f as "module.name(arg types) -> result".
func FuncSignature(m *modules.Module, f modules.FuncDef) string {
	var params []string
	for _, a := range f.Args {
		params = append(params, a.String())
	}
	if f.Variadic {
		params = append(params, "...")
	}
	sig := fmt.Sprintf("%s.%s(%s)", m.Name, f.Name, strings.Join(params, ", "))
	if r := resultType(m, f); r != "" {
		sig += " -> " + r
	}
	return sig
}

// resultType names the host type a function returns, after the host converts
// sized and unsigned integers to int.
func resultType(m *modules.Module, f modules.FuncDef) string {
	if m.Impl == nil {
		return ""
	}
	fn := reflect.ValueOf(m.Impl).MethodByName(modules.MethodName(f.Name))
	if !fn.IsValid() || fn.Type().NumOut() == 0 {
		return ""
	}
	t := fn.Type().Out(0)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return "any"
		}
		return ""
	}
	return t.String()
}
