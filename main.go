package main

import "github.com/timvw/tmx/cmd"

func main() {
	cmd.Execute()
}
