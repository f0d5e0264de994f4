package main

import (
	"errors"
	"fmt"
	"os"

	"habackfill/internal/cli"
	"habackfill/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var missing *config.MissingError
		if errors.As(err, &missing) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
