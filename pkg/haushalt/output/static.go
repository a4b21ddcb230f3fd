package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/aggregate"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/policy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Years are the fiscal years an artifact carries.
var Years = []int{2025, 2026}

// BlockSummary is one block line of summary.json.
type BlockSummary struct {
	ID         policy.Block `json:"id"`
	Name       string       `json:"name"`
	ShortName  string       `json:"shortName"`
	Color      string       `json:"color"`
	Value      float64      `json:"value"`
	ValueMio   float64      `json:"valueMio"`
	Percentage float64      `json:"percentage"`
	ItemCount  int          `json:"itemCount"`
}

// Summary is the per-year overview (summary.json).
type Summary struct {
	Year       int            `json:"year"`
	Total      float64        `json:"total"`
	TotalMrd   float64        `json:"totalMrd"`
	TotalMio   float64        `json:"totalMio"`
	ItemCount  int            `json:"itemCount"`
	BlockCount int            `json:"blockCount"`
	Blocks     []BlockSummary `json:"blocks"`
}

// TreemapLeaf is one booking line under a product.
type TreemapLeaf struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Amt   string  `json:"amt"`
}

// TreemapProduct groups the items of one product code.
type TreemapProduct struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Value    float64       `json:"value"`
	Children []TreemapLeaf `json:"children"`
}

// TreemapBlock is a policy block with its products.
type TreemapBlock struct {
	ID       policy.Block     `json:"id"`
	Name     string           `json:"name"`
	Value    float64          `json:"value"`
	Color    string           `json:"color"`
	Children []TreemapProduct `json:"children"`
}

// Treemap is the root of treemap.json.
type Treemap struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Children []TreemapBlock `json:"children"`
}

// ListItem is one entry of list.json.
type ListItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Amount      float64      `json:"amount"`
	Group       string       `json:"group"`
	GroupID     policy.Block `json:"groupId"`
	District    string       `json:"district"`
	ProductCode string       `json:"productCode"`
	CostType    string       `json:"costType"`
}

// BlockProduct is one item inside a block detail file.
type BlockProduct struct {
	ProductCode        string  `json:"productCode"`
	Description        string  `json:"description"`
	Amt                string  `json:"amt"`
	Teilhaushalt       string  `json:"teilhaushalt"`
	Value              float64 `json:"value"`
	CostType           string  `json:"costType"`
	AccountDescription string  `json:"accountDescription"`
}

// BlockDetail is the drill-down file of one block (blocks/<id>-<slug>.json).
type BlockDetail struct {
	ID        policy.Block   `json:"id"`
	Name      string         `json:"name"`
	Color     string         `json:"color"`
	Value     float64        `json:"value"`
	ValueMio  float64        `json:"valueMio"`
	ItemCount int            `json:"itemCount"`
	Products  []BlockProduct `json:"products"`
}

// Meta describes the generated view set (meta.json).
type Meta struct {
	Years       []int  `json:"years"`
	DefaultYear int    `json:"defaultYear"`
	Source      string `json:"source"`
	Generated   bool   `json:"generated"`
	DataType    string `json:"dataType"`
	City        string `json:"city"`
	TotalItems  int    `json:"totalItems"`
}

func planOf(year int, p2025, p2026 float64) float64 {
	if year == 2026 {
		return p2026
	}
	return p2025
}

func totalOf(year int, md models.Metadata) (total, mrd float64) {
	if year == 2026 {
		return md.Total2026, md.Total2026Mrd
	}
	return md.Total2025, md.Total2025Mrd
}

func round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

// BuildSummary creates the overview for year, blocks sorted by amount.
func BuildSummary(art *models.Artifact, year int) Summary {
	total, totalMrd := totalOf(year, art.Metadata)

	var blocks []BlockSummary
	for _, agg := range aggregate.Sorted(art.Aggregated, year) {
		value := planOf(year, agg.Plan2025, agg.Plan2026)
		pct := 0.0
		if total != 0 {
			pct = round1(value / total * 100)
		}
		blocks = append(blocks, BlockSummary{
			ID:         agg.Block,
			Name:       agg.Name,
			ShortName:  agg.Name,
			Color:      agg.Color,
			Value:      value,
			ValueMio:   round1(value / 1e6),
			Percentage: pct,
			ItemCount:  agg.ItemCount,
		})
	}

	return Summary{
		Year:       year,
		Total:      total,
		TotalMrd:   totalMrd,
		TotalMio:   round1(total / 1e6),
		ItemCount:  art.Metadata.TotalItems,
		BlockCount: len(art.Aggregated),
		Blocks:     blocks,
	}
}

// BuildTreemap creates the block → product → booking hierarchy for year.
// Products list their bookings only when there is more than one.
func BuildTreemap(art *models.Artifact, city string, year int) Treemap {
	root := Treemap{ID: "root", Name: fmt.Sprintf("%s Haushalt %d", city, year)}

	for _, b := range policy.Blocks() {
		agg, ok := art.Aggregated[b]
		if !ok {
			continue
		}

		var products []TreemapProduct
		index := make(map[string]int)
		for _, item := range agg.Items {
			value := planOf(year, item.Plan2025, item.Plan2026)
			i, seen := index[item.ProductCode]
			if !seen {
				i = len(products)
				index[item.ProductCode] = i
				products = append(products, TreemapProduct{ID: item.ProductCode, Name: item.Description})
			}
			products[i].Value += value
			products[i].Children = append(products[i].Children, TreemapLeaf{
				Name:  item.AccountDescription,
				Value: value,
				Amt:   item.Amt,
			})
		}
		for i := range products {
			if len(products[i].Children) <= 1 {
				products[i].Children = []TreemapLeaf{}
			}
		}

		root.Children = append(root.Children, TreemapBlock{
			ID:       agg.Block,
			Name:     agg.Name,
			Value:    planOf(year, agg.Plan2025, agg.Plan2026),
			Color:    agg.Color,
			Children: products,
		})
	}
	return root
}

// BuildList flattens all items for year, largest amount first.
func BuildList(art *models.Artifact, year int) []ListItem {
	list := make([]ListItem, 0, len(art.Items))
	for _, item := range art.Items {
		list = append(list, ListItem{
			ID:          item.ProductCode,
			Title:       item.Description,
			Amount:      planOf(year, item.Plan2025, item.Plan2026),
			Group:       item.PolicyBlockName,
			GroupID:     item.PolicyBlock,
			District:    item.Amt,
			ProductCode: item.ProductCode,
			CostType:    item.CostTypePosition,
		})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Amount > list[j].Amount })
	return list
}

// BuildBlockDetails creates the drill-down data of every block for year.
func BuildBlockDetails(art *models.Artifact, year int) []BlockDetail {
	var out []BlockDetail
	for _, b := range policy.Blocks() {
		agg, ok := art.Aggregated[b]
		if !ok {
			continue
		}
		products := make([]BlockProduct, 0, len(agg.Items))
		for _, item := range agg.Items {
			products = append(products, BlockProduct{
				ProductCode:        item.ProductCode,
				Description:        item.Description,
				Amt:                item.Amt,
				Teilhaushalt:       item.Teilhaushalt,
				Value:              planOf(year, item.Plan2025, item.Plan2026),
				CostType:           item.CostTypePosition,
				AccountDescription: item.AccountDescription,
			})
		}
		value := planOf(year, agg.Plan2025, agg.Plan2026)
		out = append(out, BlockDetail{
			ID:        agg.Block,
			Name:      agg.Name,
			Color:     agg.Color,
			Value:     value,
			ValueMio:  round1(value / 1e6),
			ItemCount: agg.ItemCount,
			Products:  products,
		})
	}
	return out
}

// BlockFileName returns the detail file name of a block,
// e.g. "A-verwaltung-und-sicherheit.json".
func BlockFileName(id policy.Block, name string) string {
	slug := cases.Lower(language.German).String(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "&", "und")
	return fmt.Sprintf("%s-%s.json", id, slug)
}

// WriteStatic writes the per-year view files and meta.json below dir and
// returns the paths written. The files are built in a staging directory
// first, so a failed build leaves dir untouched. Other entries in dir are
// kept.
func WriteStatic(dir, city string, art *models.Artifact) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	staging, err := os.MkdirTemp(dir, ".static-*")
	if err != nil {
		return nil, fmt.Errorf("creating staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	rel, err := writeViews(staging, city, art)
	if err != nil {
		return nil, err
	}

	entries := []string{"meta.json"}
	for _, year := range Years {
		entries = append(entries, fmt.Sprint(year))
	}
	for _, name := range entries {
		target := filepath.Join(dir, name)
		if err := os.RemoveAll(target); err != nil {
			return nil, fmt.Errorf("replacing %s: %w", target, err)
		}
		if err := os.Rename(filepath.Join(staging, name), target); err != nil {
			return nil, fmt.Errorf("replacing %s: %w", target, err)
		}
	}

	written := make([]string, len(rel))
	for i, r := range rel {
		written[i] = filepath.Join(dir, r)
	}
	return written, nil
}

// writeViews writes every view file below root and returns their paths
// relative to root.
func writeViews(root, city string, art *models.Artifact) ([]string, error) {
	var written []string
	write := func(rel string, v interface{}) error {
		if err := WriteJSON(filepath.Join(root, rel), v, true); err != nil {
			return err
		}
		written = append(written, rel)
		return nil
	}

	for _, year := range Years {
		yearDir := fmt.Sprint(year)

		if err := write(filepath.Join(yearDir, "summary.json"), BuildSummary(art, year)); err != nil {
			return nil, err
		}
		if err := write(filepath.Join(yearDir, "treemap.json"), BuildTreemap(art, city, year)); err != nil {
			return nil, err
		}
		if err := write(filepath.Join(yearDir, "list.json"), BuildList(art, year)); err != nil {
			return nil, err
		}
		for _, d := range BuildBlockDetails(art, year) {
			if err := write(filepath.Join(yearDir, "blocks", BlockFileName(d.ID, d.Name)), d); err != nil {
				return nil, err
			}
		}
	}

	meta := Meta{
		Years:       Years,
		DefaultYear: Years[0],
		Source:      art.Metadata.Source,
		Generated:   art.Metadata.Generated,
		DataType:    "Ergebnishaushalt",
		City:        city,
		TotalItems:  art.Metadata.TotalItems,
	}
	if err := write("meta.json", meta); err != nil {
		return nil, err
	}
	return written, nil
}
