package main

import "github.com/YuminosukeSato/cancerreg/internal/cli"

func main() {
	cli.Execute()
}
