package main

import (
	"fmt"
	"os"

	"github.com/jeanpaul/factcollector/internal/console"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.ErrorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
