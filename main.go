package main

import (
	"os"

	"github.com/jubbon/isolde-sub000/cmd"
	"github.com/jubbon/isolde-sub000/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
