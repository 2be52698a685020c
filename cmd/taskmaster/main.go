package main

import (
	"fmt"
	"os"

	"taskmaster/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}
