package main

import (
	"fmt"
	"log"
	"os"
)

type command struct {
	name    string
	summary string
	run     func(args []string) error
}

var commands = []command{
	{"generate", "generate a TMX map from a tileset catalog", runGenerate},
	{"regenerate", "repeat the last generate with a new seed", runRegenerate},
	{"inspect", "summarize TMX files", runInspect},
	{"preview", "render a TMX map to PNG", runPreview},
	{"view", "open a TMX map in a window", runView},
	{"serve", "serve map generation over HTTP", runServe},
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: tilegen <command> [flags]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(os.Stderr, "\nrun 'tilegen <command> -h' for command flags\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	if name == "-h" || name == "--help" || name == "help" {
		usage()
		return
	}

	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(os.Args[2:]); err != nil {
			log.Fatalf("[tilegen] %s: %v", name, err)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "tilegen: unknown command %q\n\n", name)
	usage()
	os.Exit(2)
}
