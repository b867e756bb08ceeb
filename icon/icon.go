// Package icon renders status symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/anisan-cli/anicat/key"
	"github.com/spf13/viper"
)

// Variant names accepted by icons.variant.
const (
	Emoji   = "emoji"
	Nerd    = "nerd"
	Plain   = "plain"
	Kaomoji = "kaomoji"
	Squares = "squares"
)

var variants = []struct {
	name string
	pick func(*iconDef) string
}{
	{Emoji, func(d *iconDef) string { return d.emoji }},
	{Nerd, func(d *iconDef) string { return d.nerd }},
	{Plain, func(d *iconDef) string { return d.plain }},
	{Kaomoji, func(d *iconDef) string { return d.kaomoji }},
	{Squares, func(d *iconDef) string { return d.squares }},
}

// AvailableVariants returns the variant names in display order.
func AvailableVariants() []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.name
	}
	return names
}

type iconDef struct {
	emoji, nerd, plain, kaomoji, squares string
}

// Get renders i in the configured variant. Unknown variants and icons render nothing.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}

	variant := viper.GetString(key.IconsVariant)
	for _, v := range variants {
		if v.name == variant {
			return v.pick(def)
		}
	}
	return ""
}
