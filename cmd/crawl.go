package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/icon"
	"github.com/anisan-cli/anicat/internal/crawler"
	"github.com/anisan-cli/anicat/key"
	"github.com/anisan-cli/anicat/lists"
	"github.com/anisan-cli/anicat/style"
	"github.com/anisan-cli/anicat/tui"
	"github.com/anisan-cli/anicat/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(crawlCmd)
	crawlCmd.PersistentFlags().BoolP("json", "j", false, "Print the result as JSON")
	crawlCmd.PersistentFlags().BoolP("plain", "p", false, "Print discoveries line by line instead of the progress view")
	crawlCmd.SetOut(os.Stdout)

	crawlCmd.AddCommand(crawlWarmupCmd, crawlRelatedCmd, crawlTagCmd, crawlRecommendationsCmd)

	crawlRecommendationsCmd.Flags().Int("limit", 0, "Maximum number of titles, overrides "+key.RecommendationsLimit)
	lo.Must0(viper.BindPFlag(key.RecommendationsLimit, crawlRecommendationsCmd.Flags().Lookup("limit")))
	crawlRecommendationsCmd.Flags().Int("cutoff", 0, "Share of all votes in percent, overrides "+key.RecommendationsCutoff)
	lo.Must0(viper.BindPFlag(key.RecommendationsCutoff, crawlRecommendationsCmd.Flags().Lookup("cutoff")))
}

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Discover titles by crawling metadata sites",
}

// cancellable is the part of a crawler the progress view can stop.
type cancellable interface {
	Cancel()
}

// runCrawl runs a crawl in the progress view, or plainly when requested or when stdout is not a terminal.
func runCrawl(cmd *cobra.Command, title string, c cancellable, run func(ctx context.Context, obs crawler.Observer) crawler.Result) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	asJSON := lo.Must(cmd.Flags().GetBool("json"))
	plain := lo.Must(cmd.Flags().GetBool("plain")) || asJSON || !util.IsTerminal()

	var (
		result crawler.Result
		err    error
	)

	if plain {
		obs := crawler.Observers{}
		if !asJSON {
			obs.Found = func(a *anime.Anime) {
				cmd.Println(tui.FormatAnime(a))
			}
		}
		result = run(ctx, obs)
	} else {
		result, err = tui.Run(&tui.Options{
			Title:  title,
			Run:    func(obs crawler.Observer) crawler.Result { return run(ctx, obs) },
			Cancel: c.Cancel,
		})
		handleErr(err)

		for _, a := range result.Anime {
			cmd.Println(tui.FormatAnime(a))
		}
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(result))
		return
	}

	summary := fmt.Sprintf("%s %s found", icon.Get(icon.Success), util.Quantify(len(result.Anime), "title", "titles"))
	if result.Cancelled {
		summary = fmt.Sprintf("%s stopped, %s found", icon.Get(icon.Cancel), util.Quantify(len(result.Anime), "title", "titles"))
	}
	cmd.Println(style.Bold(summary))
}

// inputLinks returns the links given as arguments, or the anime list when there are none.
func inputLinks(args []string, store *lists.Store) []anime.InfoLink {
	if len(args) > 0 {
		links, err := parseLinks(args)
		handleErr(err)
		return links
	}

	return store.Links(lists.Anime)
}

var crawlWarmupCmd = &cobra.Command{
	Use:   "warmup [link...]",
	Short: "Fetch metadata, related titles and recommendations of the anime list",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadLists()
		metadata, closeBrowser := newMetadata()
		defer closeBrowser()

		c := crawler.NewWarmup(metadata, viper.GetInt(key.CrawlerParallelism))
		links := inputLinks(args, store)
		runCrawl(cmd, "Warming up", c, func(ctx context.Context, obs crawler.Observer) crawler.Result {
			return c.Run(ctx, links, obs)
		})
	},
}

var crawlRelatedCmd = &cobra.Command{
	Use:   "related [link...]",
	Short: "Walk related titles starting from the anime list",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadLists()
		metadata, closeBrowser := newMetadata()
		defer closeBrowser()

		c := crawler.NewRelated(metadata, store)
		links := inputLinks(args, store)
		runCrawl(cmd, "Related titles", c, func(ctx context.Context, obs crawler.Observer) crawler.Result {
			return c.Run(ctx, links, obs)
		})
	},
}

var crawlTagCmd = &cobra.Command{
	Use:     "tag <listing-url>",
	Short:   "Walk the pages of a genre, tag or season listing",
	Args:    cobra.ExactArgs(1),
	Example: "  anicat crawl tag https://myanimelist.net/anime/genre/1/Action",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadLists()
		metadata, closeBrowser := newMetadata()
		defer closeBrowser()

		c := crawler.NewTag(metadata, store)
		runCrawl(cmd, "Tag listing", c, func(ctx context.Context, obs crawler.Observer) crawler.Result {
			return c.Run(ctx, args[0], obs)
		})
	},
}

var crawlRecommendationsCmd = &cobra.Command{
	Use:   "recommendations [link...]",
	Short: "Rank the titles most recommended for the anime list",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadLists()
		metadata, closeBrowser := newMetadata()
		defer closeBrowser()

		c := crawler.NewRecommendations(
			metadata,
			store,
			viper.GetInt(key.RecommendationsLimit),
			viper.GetInt(key.RecommendationsCutoff),
		)
		links := inputLinks(args, store)
		runCrawl(cmd, "Recommendations", c, func(ctx context.Context, obs crawler.Observer) crawler.Result {
			return c.Run(ctx, links, obs)
		})
	},
}
