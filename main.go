// Package main is the entry point for the gomutest CLI.
package main

import "gooze.dev/pkg/gomutest/cmd"

func main() {
	cmd.Execute()
}
