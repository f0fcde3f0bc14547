package main

import cmd "github.com/rohmanhakim/weburl/internal/cli"

func main() {
	cmd.Execute()
}
