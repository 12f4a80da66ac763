package main

import (
	"github.com/taskbloom/taskbloom/internal/cli"
)

func main() {
	cli.Execute()
}
