package main

import "github.com/quizhall/quizhall/internal/cli"

func main() {
	cli.Execute()
}
