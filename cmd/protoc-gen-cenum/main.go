package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ktr0731/cenum/meta"
	"github.com/ktr0731/cenum/plugin"
)

func main() {
	if len(os.Args) == 2 && os.Args[1] == "--version" {
		fmt.Printf("protoc-gen-%s %s\n", meta.AppName, meta.Version)
		return
	}
	if err := plugin.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "protoc-gen-%s: %s\n", meta.AppName, err)
		os.Exit(1)
	}
}
