package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/color"
	"github.com/anisan-cli/anicat/extractor"
	"github.com/anisan-cli/anicat/icon"
	"github.com/anisan-cli/anicat/lists"
	"github.com/anisan-cli/anicat/style"
	"github.com/anisan-cli/anicat/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func completionListKinds(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Map(lists.Kinds, func(k lists.Kind, _ int) string {
		return string(k)
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.SetOut(os.Stdout)

	listCmd.AddCommand(listAddCmd, listRemoveCmd, listShowCmd, listFindCmd)
	listAddCmd.Flags().StringP("title", "t", "", "Title to store instead of the fetched one")
	listShowCmd.Flags().BoolP("json", "j", false, "Print the list as JSON")
	listFindCmd.Flags().BoolP("json", "j", false, "Print the matches as JSON")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage the anime, watch and filter lists",
	Long: `Manage the lists crawls are checked against.
anime  - titles you have seen, used as crawl input
watch  - titles you plan to see
filter - titles that should never be suggested`,
}

var listAddCmd = &cobra.Command{
	Use:               "add <list> <link...>",
	Short:             "Add titles to a list",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionListKinds,
	Example:           "  anicat list add watch https://myanimelist.net/anime/19/Monster",
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := lists.ParseKind(args[0])
		handleErr(err)

		links, err := parseLinks(args[1:])
		handleErr(err)

		store := loadLists()
		metadata, closeBrowser := newMetadata()
		defer closeBrowser()

		title := lo.Must(cmd.Flags().GetString("title"))
		entries := make([]lists.Entry, 0, len(links))
		for _, link := range links {
			link = metadata.Registry().Normalize(link)
			entry := lists.Entry{Title: title, Link: link}

			if entry.Title == "" {
				erase := util.PrintErasable(icon.Get(icon.Progress) + " Fetching " + link.String())
				a, ok := metadata.Anime(context.Background(), link).Get()
				erase()
				if ok {
					entry.Title = a.Title
				} else {
					entry.Title = link.String()
				}
			}

			entries = append(entries, entry)
		}

		added, err := store.Add(kind, entries...)
		handleErr(err)

		cmd.Printf(
			"%s added %s to the %s list\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Quantify(added, "title", "titles"),
			style.Fg(color.Purple)(string(kind)),
		)
	},
}

var listRemoveCmd = &cobra.Command{
	Use:               "remove <list> <link>",
	Short:             "Remove a title from a list",
	Aliases:           []string{"rm"},
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionListKinds,
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := lists.ParseKind(args[0])
		handleErr(err)

		store := loadLists()
		link := extractor.Default().Normalize(anime.NewInfoLink(args[1]))

		removed, err := store.Remove(kind, link)
		handleErr(err)

		if !removed {
			cmd.Printf("%s %s is not on the %s list\n", icon.Get(icon.Fail), link, kind)
			return
		}

		cmd.Printf("%s removed %s from the %s list\n", style.Fg(color.Green)(icon.Get(icon.Success)), link, style.Fg(color.Purple)(string(kind)))
	},
}

var listShowCmd = &cobra.Command{
	Use:               "show <list>",
	Short:             "Print the titles of a list",
	Aliases:           []string{"ls"},
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionListKinds,
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := lists.ParseKind(args[0])
		handleErr(err)

		entries := loadLists().Entries(kind)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		for _, e := range entries {
			cmd.Printf("%s %s %s\n", icon.Get(icon.List), style.Bold(e.Title), style.Faint(e.Link.String()))
		}
	},
}

var listFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search all lists by title",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		matches := loadLists().Find(args[0])

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(matches))
			return
		}

		if len(matches) == 0 {
			cmd.Printf("%s nothing matches %q\n", icon.Get(icon.Search), args[0])
			return
		}

		for _, m := range matches {
			cmd.Printf(
				"%s %s %s %s\n",
				icon.Get(icon.Search),
				style.Tag(style.Base, style.AccentColor)(string(m.Kind)),
				style.Bold(m.Entry.Title),
				style.Faint(m.Entry.Link.String()),
			)
		}
	},
}
