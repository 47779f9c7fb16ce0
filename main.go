package main

import "github.com/ngld/scb/cmd"

func main() {
	cmd.Execute()
}
