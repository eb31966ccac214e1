package main

import "github.com/mvp-joe/code-digest/internal/cli"

func main() {
	cli.Execute()
}
