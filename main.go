// File: main.go
package main

import (
	"os"

	"github.com/kuhnmi/find-sec-bugs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
