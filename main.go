package main

import "github.com/rbeiter/tw2002-client/cmd"

func main() {
	cmd.Execute()
}
