package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Cancel
	Found
	Link
	List
	Search
	Mark
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔᴥᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "😵",
		nerd:    "",
		plain:   "✗",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(・_・ヾ",
		squares: "🟨",
	},
	Cancel: {
		emoji:   "🛑",
		nerd:    "",
		plain:   "-",
		kaomoji: "(－‸ლ)",
		squares: "🟧",
	},
	Found: {
		emoji:   "✨",
		nerd:    "",
		plain:   "+",
		kaomoji: "(☆▽☆)",
		squares: "🟪",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "~",
		kaomoji: "(￣▽￣)ノ",
		squares: "🟦",
	},
	List: {
		emoji:   "📜",
		nerd:    "",
		plain:   "*",
		kaomoji: "φ(．．)",
		squares: "⬜",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(°ロ°)",
		squares: "🟫",
	},
	Mark: {
		emoji:   "📌",
		nerd:    "",
		plain:   ">",
		kaomoji: "(•̀ᴗ•́)",
		squares: "⬛",
	},
}
