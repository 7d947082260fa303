package main

import (
	"github.com/severedgames/mysteryparty/internal/cli"
)

func main() {
	cli.Execute()
}
