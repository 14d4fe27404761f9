package cmd

import (
	"github.com/strandlight/go-bcsdf/log"
	"github.com/urfave/cli"
)

var logger = log.New("bcsdf")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
