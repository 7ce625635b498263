package main

import (
	"fmt"
	"os"

	"lox/interpreter-go/pkg/driver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	switch len(args) {
	case 0:
		return driver.NewSession().RunPrompt(os.Stdin, os.Stdout)
	case 1:
		return driver.NewSession().RunFile(args[0])
	default:
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		return driver.ExitUsage
	}
}
