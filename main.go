package main

import (
	"github.com/controlkit/pidloop/cmd"
)

func main() {
	cmd.Execute()
}
