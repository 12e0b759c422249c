package doublesmod

import (
	"github.com/rubiojr/stringdoubles/modules"
)

func init() {
	modules.Register(&modules.Module{
		Name: "string_doubles",
		Type: "StringDoubles",
		Doc:  "Count adjacent repeated characters in text.",
		Funcs: []modules.FuncDef{
			{Name: "count_doubles", Args: []modules.ArgType{modules.String}, Doc: "Count adjacent equal code points."},
			{Name: "count_doubles_bytes", Args: []modules.ArgType{modules.String}, Doc: "Count adjacent equal UTF-8 bytes."},
		},
		Impl: &StringDoubles{},
	})
}
