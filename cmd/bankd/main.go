package main

import "github.com/bankd/bankd/internal/cli"

func main() {
	cli.Execute()
}
