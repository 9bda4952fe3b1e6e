package main

import "github.com/mochacli/mocha/cmd"

func main() {
	cmd.Execute()
}
