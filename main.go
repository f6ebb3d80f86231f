package main

import "github.com/garth74/jcc/cmd"

func main() {
	cmd.Execute()
}
