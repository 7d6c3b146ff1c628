package main

import "anime-stream/cmd/animectl/commands"

func main() {
	commands.Execute()
}
