package version

import (
	"context"
	"fmt"
	"time"

	"github.com/anisan-cli/anicat/color"
	"github.com/anisan-cli/anicat/constant"
	"github.com/anisan-cli/anicat/icon"
	"github.com/anisan-cli/anicat/key"
	"github.com/anisan-cli/anicat/log"
	"github.com/anisan-cli/anicat/style"
	"github.com/anisan-cli/anicat/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release exists. It gives up silently after a few seconds.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		log.Debugf("version check: %v", err)
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/anisan-cli/anicat/releases/tag/v"+latest),
	)
}
