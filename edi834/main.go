package main

import (
	"os"

	"github.com/CMSgov/edi834-app/edi834/edi834cli"
	"github.com/CMSgov/edi834-app/log"
)

func main() {
	app := edi834cli.GetApp()
	if err := app.Run(os.Args); err != nil {
		log.CLI.Fatal(err)
	}
}
