package main

import "cuppa/internal/cli"

func main() {
	cli.Execute()
}
