package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anisan-cli/anicat/icon"
	"github.com/anisan-cli/anicat/util"
	"github.com/anisan-cli/anicat/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
	// confirm asks before removing data the user entered by hand
	confirm bool
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache, false},
	{"managed browser", "browser", mo.Some("b"), where.Browser, false},
	{"logs", "logs", mo.Some("l"), where.Logs, false},
	{"lists file", "lists", mo.None[string](), where.Lists, true},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached pages, logs and other files anicat created",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool
		yes := lo.Must(cmd.Flags().GetBool("yes"))

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}
			anyCleared = true

			if target.confirm && !yes {
				var ok bool
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Delete the %s? This cannot be undone", target.name),
					Default: false,
				}
				handleErr(survey.AskOne(prompt, &ok))
				if !ok {
					continue
				}
			}

			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := util.Delete(target.location())
			e()
			if !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
