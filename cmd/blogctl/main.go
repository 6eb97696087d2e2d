package main

import (
	"fmt"
	"os"

	"github.com/inkpost/blog-system/cmd/blogctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "blogctl:", err)
		os.Exit(1)
	}
}
