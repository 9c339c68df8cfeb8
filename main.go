package main

import "github.com/treescopelabs/treescope/internal/cli"

func main() {
	cli.Execute()
}
