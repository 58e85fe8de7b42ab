package main

import "github.com/mcoot/scorecli/internal/cli"

func main() {
	cli.Execute()
}
