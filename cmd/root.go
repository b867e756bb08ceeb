// Package cmd implements the anicat command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/anisan-cli/anicat/color"
	"github.com/anisan-cli/anicat/constant"
	"github.com/anisan-cli/anicat/icon"
	"github.com/anisan-cli/anicat/key"
	"github.com/anisan-cli/anicat/log"
	"github.com/anisan-cli/anicat/style"
	"github.com/anisan-cli/anicat/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant (emoji, kaomoji, plain, squares, nerd)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Int("parallelism", 0, "Worker pool size for the cache warm-up, 0 uses all CPUs")
	lo.Must0(viper.BindPFlag(key.CrawlerParallelism, rootCmd.PersistentFlags().Lookup("parallelism")))

	rootCmd.PersistentFlags().Bool("headless", true, "Render bot-protected sites in a headless browser")
	lo.Must0(viper.BindPFlag(key.DownloaderHeadless, rootCmd.PersistentFlags().Lookup("headless")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.Anicat,
	Short: "Anime metadata cache and discovery crawler",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Discover anime through related titles, tags and recommendations"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
