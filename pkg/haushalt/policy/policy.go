// Package policy holds the static classification tables that map product
// code prefixes to the eleven Leipzig policy blocks.
package policy

import "sort"

// Block identifies a policy block ("A" through "K").
type Block string

const (
	BlockA Block = "A"
	BlockB Block = "B"
	BlockC Block = "C"
	BlockD Block = "D"
	BlockE Block = "E"
	BlockF Block = "F"
	BlockG Block = "G"
	BlockH Block = "H"
	BlockI Block = "I"
	BlockJ Block = "J"
	BlockK Block = "K"
)

// Info is the display data attached to a block.
type Info struct {
	Block Block
	Name  string
	Color string
}

var prefixes = map[string]Block{
	"11": BlockA, "12": BlockA,
	"21": BlockB, "22": BlockB, "23": BlockB, "24": BlockB, "25": BlockB,
	"26": BlockB, "27": BlockB, "28": BlockB, "29": BlockB,
	"31": BlockC, "33": BlockC, "34": BlockC, "35": BlockC, "36": BlockC,
	"41": BlockD,
	"42": BlockE,
	"51": BlockF, "52": BlockF,
	"53": BlockG,
	"54": BlockH,
	"55": BlockI, "56": BlockI,
	"57": BlockJ,
	"61": BlockK,
}

var blocks = map[Block]Info{
	BlockA: {BlockA, "Verwaltung & Sicherheit", "#3B82F6"},
	BlockB: {BlockB, "Bildung & Kultur", "#10B981"},
	BlockC: {BlockC, "Soziales & Jugend", "#EF4444"},
	BlockD: {BlockD, "Gesundheit", "#F59E0B"},
	BlockE: {BlockE, "Sport & Bäder", "#8B5CF6"},
	BlockF: {BlockF, "Stadtentwicklung & Wohnen", "#EC4899"},
	BlockG: {BlockG, "Ver- & Entsorgung", "#06B6D4"},
	BlockH: {BlockH, "Verkehr & Mobilität", "#6366F1"},
	BlockI: {BlockI, "Umwelt & Grün", "#14B8A6"},
	BlockJ: {BlockJ, "Wirtschaft & Tourismus", "#F97316"},
	BlockK: {BlockK, "Finanzwirtschaft", "#64748B"},
}

// Lookup returns the block a two-character prefix belongs to.
func Lookup(prefix string) (Block, bool) {
	b, ok := prefixes[prefix]
	return b, ok
}

// Describe returns the display data for a block.
func Describe(b Block) (Info, bool) {
	info, ok := blocks[b]
	return info, ok
}

// Blocks returns all block identifiers in alphabetical order.
func Blocks() []Block {
	out := make([]Block, 0, len(blocks))
	for b := range blocks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
