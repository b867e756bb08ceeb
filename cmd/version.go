package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/anisan-cli/anicat/color"
	"github.com/anisan-cli/anicat/constant"
	"github.com/anisan-cli/anicat/style"
	"github.com/anisan-cli/anicat/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version number")
}

type buildInfo struct {
	App, Version, Revision, BuiltAt, BuiltBy, Platform string
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint": style.Faint,
	"bold":  style.Bold,
	"title": style.Fg(color.Purple),
}).Parse(`{{ title .App }} {{ bold .Version }}

  {{ faint "revision" }}  {{ .Revision }}
  {{ faint "built" }}     {{ .BuiltAt }} by {{ .BuiltBy }}
  {{ faint "platform" }}  {{ .Platform }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), buildInfo{
			App:      constant.Anicat,
			Version:  constant.Version,
			Revision: constant.Revision,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Platform: runtime.GOOS + "/" + runtime.GOARCH,
		}))
	},
}
