package main

import "github.com/rustyeddy/tickcalc/internal/cli"

func main() {
	cli.Execute()
}
