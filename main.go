package main

import (
	"os"

	"github.com/ktr0731/cenum/app"
	"github.com/ktr0731/cenum/cui"
)

func main() {
	os.Exit(app.New(cui.New()).Run(os.Args[1:]))
}
