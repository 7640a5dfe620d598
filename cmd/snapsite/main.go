package main

import "github.com/snapsite/snapsite/cmd/snapsite/commands"

func main() {
	commands.Execute()
}
