package main

import "github.com/ppiankov/pushwatch/internal/cli"

func main() {
	cli.Execute()
}
