package main

import "github.com/quocvuong92/hadoop-repl/cmd"

func main() {
	cmd.Execute()
}
