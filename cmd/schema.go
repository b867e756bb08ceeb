package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/internal/crawler"
	"github.com/anisan-cli/anicat/lists"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("anime", "a", false, "Schema of a single anime record as printed by show --json")
	schemaCmd.Flags().BoolP("lists", "l", false, "Schema of the lists file")
	schemaCmd.MarkFlagsMutuallyExclusive("anime", "lists")
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of crawl output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "anime", "result", "entry":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("anime")):
			schema = reflector.Reflect(&anime.Anime{})
		case lo.Must(cmd.Flags().GetBool("lists")):
			schema = reflector.Reflect(map[lists.Kind][]lists.Entry{})
		default:
			schema = reflector.Reflect(&crawler.Result{})
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		handleErr(enc.Encode(schema))
	},
}
