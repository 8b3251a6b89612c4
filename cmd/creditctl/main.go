package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	app := RootCommand()

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
