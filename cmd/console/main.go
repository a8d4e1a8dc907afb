package main

import "merchant-console/internal/cli"

func main() {
	cli.Execute()
}
