package menu

import "github.com/tidwall/gjson"

// Category is one section of a store's menu board.
type Category struct {
	Name  string
	Items []BoardItem
}

// BoardItem is one orderable product as listed on the board. Available
// reflects the listing's own flags; the item may still resolve to zero
// variants once its detail is fetched.
type BoardItem struct {
	SpuID     string
	Name      string
	Price     float64
	HasPrice  bool
	Available bool
}

var (
	categoryListPaths = []string{"categoryList", "menuList", "categories", "data.categoryList", "data.menuList", "data.categories"}
	categoryNamePaths = []string{"categoryName", "name", "title"}
	categoryItemPaths = []string{"goodsList", "spuList", "itemList", "products", "data.goodsList", "data.spuList", "data.itemList"}
)

// ParseBoard normalizes a menu payload into categories of board items. Like
// the rest of the package it is total: records it cannot read are skipped,
// and a flat uncategorized list still renders as a single section.
func ParseBoard(body gjson.Result) []Category {
	var out []Category
	for _, rec := range FirstArray(body, categoryListPaths...) {
		cat := Category{Name: FirstString(rec, categoryNamePaths...)}
		for _, it := range FirstArray(rec, categoryItemPaths...) {
			if item, ok := boardItem(it); ok {
				cat.Items = append(cat.Items, item)
			}
		}
		if cat.Name == "" && len(cat.Items) == 0 {
			continue
		}
		out = append(out, cat)
	}
	if len(out) > 0 {
		return out
	}

	var flat []BoardItem
	for _, it := range FirstArray(body, categoryItemPaths...) {
		if item, ok := boardItem(it); ok {
			flat = append(flat, item)
		}
	}
	if len(flat) > 0 {
		out = append(out, Category{Name: "Menu", Items: flat})
	}
	return out
}

func boardItem(rec gjson.Result) (BoardItem, bool) {
	item := BoardItem{
		SpuID:     FirstString(rec, spuIDPaths...),
		Name:      FirstString(rec, spuNamePaths...),
		Available: Sellable(rec, false),
	}
	if item.SpuID == "" && item.Name == "" {
		return BoardItem{}, false
	}
	if p, ok := FirstNumber(rec, pricePaths...); ok {
		item.Price, item.HasPrice = p, true
	}
	return item, true
}
