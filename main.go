package main

import "github.com/timvw/window-namer/cmd"

func main() {
	cmd.Execute()
}
