package repl

// Command is a handler bound to a Call
type Command interface {
	// Execute runs the command. Only an *ExitSignal, or an unexpected
	// failure, should be returned; expected failures go to the session's
	// error channel.
	Execute(inv Invocation, s *Session) error
	Usage(s *Session) Usage
}

// Usage describes a command for help output
type Usage struct {
	Command     string
	Description string
	Arguments   []string
}

// NewUsage creates a Usage
func NewUsage(command, description string, arguments ...string) Usage {
	return Usage{Command: command, Description: description, Arguments: arguments}
}

type funcCommand struct {
	usage Usage
	run   func(inv Invocation, s *Session) error
}

// NewCommand builds a Command from a usage and a run function
func NewCommand(usage Usage, run func(inv Invocation, s *Session) error) Command {
	return &funcCommand{usage: usage, run: run}
}

func (c *funcCommand) Execute(inv Invocation, s *Session) error {
	return c.run(inv, s)
}

func (c *funcCommand) Usage(*Session) Usage {
	return c.usage
}
