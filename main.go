package main

import (
	"os"

	"github.com/ThomasCrouzet/k8sify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
