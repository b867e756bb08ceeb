package cmd

import (
	"encoding/json"
	"os"

	"github.com/anisan-cli/anicat/color"
	"github.com/anisan-cli/anicat/style"
	"github.com/anisan-cli/anicat/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type wherePath struct {
	title    string
	flag     string
	short    string
	location func() string
}

var wherePaths = []wherePath{
	{"Config", "config", "c", where.Config},
	{"Lists", "lists", "L", where.Lists},
	{"Logs", "logs", "l", where.Logs},
	{"Cache", "cache", "C", where.Cache},
	{"Browser", "browser", "b", where.Browser},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, p := range wherePaths {
		whereCmd.Flags().BoolP(p.flag, p.short, false, "Only print the "+p.flag+" path")
	}
	whereCmd.Flags().BoolP("json", "j", false, "Print all paths as a JSON object")

	whereCmd.MarkFlagsMutuallyExclusive(append(lo.Map(wherePaths, func(p wherePath, _ int) string {
		return p.flag
	}), "json")...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where anicat keeps its files",
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range wherePaths {
			if lo.Must(cmd.Flags().GetBool(p.flag)) {
				cmd.Println(p.location())
				return
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			paths := lo.SliceToMap(wherePaths, func(p wherePath) (string, string) {
				return p.flag, p.location()
			})
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(paths))
			return
		}

		title := style.New().Bold(true).Foreground(color.HiPurple).Render
		for i, p := range wherePaths {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n%s\n", title(p.title), style.Fg(color.Yellow)("--"+p.flag), p.location())
		}
	},
}
