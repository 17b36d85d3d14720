package main

import (
	"github.com/caiiiycuk/sockdrive/cmd/sockdrivectl/cmd"
)

func main() {
	cmd.Execute()
}
