// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/bommon/cmd/bommon/cmd"
)

func main() {
	cmd.Execute()
}
