package main

import "moviehub/cmd/cli/command"

func main() {
	command.Execute()
}
