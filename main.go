package main

import (
	"github.com/anisan-cli/anicat/cmd"
	"github.com/anisan-cli/anicat/config"
	"github.com/anisan-cli/anicat/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
