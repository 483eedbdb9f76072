package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/credkeeper/credkeeper/internal/client/cli"
)

func main() {
	server := flag.String("e", "http://localhost:8080", "server endpoint")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: credctl [-e endpoint] <register|login|whoami> [args]")
		os.Exit(2)
	}

	app := cli.NewApp(*server)
	if err := app.Run(context.Background(), args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
