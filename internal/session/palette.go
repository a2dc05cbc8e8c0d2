package session

// Palette is the fixed set of user colors. Spawn colors are drawn from it and
// update-color requests must name one of its entries.
var Palette = []string{
	"#f6bd60",
	"#f7ede2",
	"#f5cac3",
	"#84a59d",
	"#f28482",
	"#5bc0eb",
	"#fde74c",
	"#9bc53d",
	"#e55934",
	"#fa7921",
}
