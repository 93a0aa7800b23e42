package repl

import (
	"strings"

	"github.com/quocvuong92/hadoop-repl/internal/completion"
	"github.com/quocvuong92/hadoop-repl/internal/display"
)

const helpNamesPerLine = 6

// registerHelp adds the help command once every provider is merged. Its
// argument completer reads the registry lazily, so help lists itself.
func registerHelp(registry *Registry) {
	usage := NewUsage("help", "Displays help / usage information for the given command", "<command>")
	call := NewCall("help", completion.NewDeferredStrings(registry.Names))

	registry.Register(call, NewCommand(usage, func(inv Invocation, s *Session) error {
		if inv.ArgCount() != 1 {
			s.Output("Usage: help [command]")
			listCommands(s, registry.Names())
			return nil
		}

		name := inv.Arg(0)
		cmd, ok := registry.Lookup(name)
		if !ok {
			s.Error("Unknown command \"%s\"", name)
			return nil
		}
		s.Output("Displaying help for \"%s\":\n", name)
		s.OutputUsage(cmd.Usage(s))
		return nil
	}))
}

func listCommands(s *Session, names []string) {
	if s.Config != nil && s.Config.Render {
		s.Output(strings.TrimRight(display.RenderMarkdown(display.MarkdownList("Commands", names)), "\n"))
		return
	}

	s.Output("")
	s.Output("Commands:")
	width := 0
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}
	for i := 0; i < len(names); i += helpNamesPerLine {
		end := i + helpNamesPerLine
		if end > len(names) {
			end = len(names)
		}
		s.OutputColumns(width, names[i:end]...)
	}
}
