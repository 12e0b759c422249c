package colormod

import (
	"github.com/rubiojr/stringdoubles/modules"
)

func init() {
	s := modules.String
	modules.Register(&modules.Module{
		Name: "color",
		Type: "Color",
		Doc:  "ANSI color and style formatting for terminal output.",
		Funcs: []modules.FuncDef{
			{Name: "red", Args: []modules.ArgType{s}, Doc: "Wrap text in red foreground color."},
			{Name: "green", Args: []modules.ArgType{s}, Doc: "Wrap text in green foreground color."},
			{Name: "yellow", Args: []modules.ArgType{s}, Doc: "Wrap text in yellow foreground color."},
			{Name: "cyan", Args: []modules.ArgType{s}, Doc: "Wrap text in cyan foreground color."},
			{Name: "gray", Args: []modules.ArgType{s}, Doc: "Wrap text in gray foreground color."},
			{Name: "bold", Args: []modules.ArgType{s}, Doc: "Wrap text in bold style."},
			{Name: "dim", Args: []modules.ArgType{s}, Doc: "Wrap text in dim style."},
		},
		Impl: &Color{},
	})
}
