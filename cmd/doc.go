// Package cmd implements the command line of hadoop-repl.
//
// # Commands
//
//   - root.go: App, the root command (a REPL against the configured
//     filesystem), shared session wiring and exit-code mapping
//   - standalone.go: starts an in-process mini-cluster and runs the REPL on it
//   - status.go: status and init helpers for the config file
//
// # Exit codes
//
//   - 0: the user quit, or input ended
//   - 1: usage errors and any other failure
//   - 100: the mini-cluster could not be brought up
//
// # Usage
//
//	func main() {
//	    cmd.Execute()
//	}
package cmd
