package main

import "github.com/dimasma0305/starklings/cmd"

func main() {
	cmd.Execute()
}
