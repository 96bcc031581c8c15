package main

import (
	"github.com/paystream-demos/advance-app/internal/cli"
)

func main() {
	cli.Execute()
}
