package main

import "github.com/byterings/gitu/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
