package main

import "github.com/timvw/ranger-drop/cmd"

func main() {
	cmd.Execute()
}
