package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/icon"
	"github.com/anisan-cli/anicat/open"
	"github.com/anisan-cli/anicat/style"
	"github.com/anisan-cli/anicat/tui"
	"github.com/anisan-cli/anicat/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolP("related", "r", false, "Also list related titles")
	showCmd.Flags().BoolP("recommendations", "R", false, "Also list user recommendations")
	showCmd.Flags().BoolP("json", "j", false, "Print the result as JSON")
	showCmd.Flags().BoolP("open", "o", false, "Open the info page in the browser")
	showCmd.SetOut(os.Stdout)
}

type showResult struct {
	Anime           *anime.Anime           `json:"anime"`
	Related         []anime.InfoLink       `json:"related,omitempty"`
	Recommendations []anime.Recommendation `json:"recommendations,omitempty"`
}

var showCmd = &cobra.Command{
	Use:     "show <link>",
	Short:   "Show the metadata of a title",
	Args:    cobra.ExactArgs(1),
	Example: "  anicat show https://myanimelist.net/anime/1535/Death_Note --related",
	Run: func(cmd *cobra.Command, args []string) {
		links, err := parseLinks(args)
		handleErr(err)

		metadata, closeBrowser := newMetadata()
		defer closeBrowser()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		link := links[0]
		a, ok := metadata.Anime(ctx, link).Get()
		if !ok {
			handleErr(errors.New("no metadata found for " + link.String()))
		}

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(a.Link.String()))
		}

		result := showResult{Anime: a}
		if lo.Must(cmd.Flags().GetBool("related")) {
			result.Related = metadata.Related(ctx, link).Links()
		}
		if lo.Must(cmd.Flags().GetBool("recommendations")) {
			result.Recommendations = metadata.Recommendations(ctx, link).Sorted()
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(result))
			return
		}

		cmd.Println(tui.FormatAnime(a))

		if result.Related != nil {
			cmd.Printf("\n%s\n", style.Bold(util.Quantify(len(result.Related), "related title", "related titles")))
			for _, l := range result.Related {
				cmd.Printf("%s %s\n", icon.Get(icon.Link), l)
			}
		}

		if result.Recommendations != nil {
			cmd.Printf("\n%s\n", style.Bold(util.Quantify(len(result.Recommendations), "recommendation", "recommendations")))
			for _, r := range result.Recommendations {
				cmd.Printf("%s %s %s\n", icon.Get(icon.Link), r.Link, style.Faint(fmt.Sprintf("(%d)", r.Amount)))
			}
		}
	},
}
