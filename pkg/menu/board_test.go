package menu

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestParseBoardCategories(t *testing.T) {
	body := gjson.Parse(`{
		"categoryList": [
			{"categoryName": "Coffee", "goodsList": [
				{"spuId": "1", "spuName": "Latte", "price": 15},
				{"spuId": "2", "spuName": "Mocha", "saleOut": 1}
			]},
			{"categoryName": "Tea", "goodsList": [
				{"spuId": "3", "spuName": "Oolong"},
				{"note": "not an item"}
			]}
		]
	}`)
	got := ParseBoard(body)
	if len(got) != 2 {
		t.Fatalf("got %d categories, want 2", len(got))
	}
	if got[0].Name != "Coffee" || len(got[0].Items) != 2 {
		t.Fatalf("first category = %+v", got[0])
	}
	latte := got[0].Items[0]
	if !latte.Available || !latte.HasPrice || latte.Price != 15 {
		t.Fatalf("latte = %+v", latte)
	}
	if got[0].Items[1].Available {
		t.Fatal("sold out item must not report available")
	}
	if len(got[1].Items) != 1 {
		t.Fatalf("unreadable records must be skipped, got %+v", got[1].Items)
	}
}

func TestParseBoardNestedUnderData(t *testing.T) {
	body := gjson.Parse(`{"data":{"menuList":[{"name":"All","itemList":[{"goodsId":"9","name":"Espresso"}]}]}}`)
	got := ParseBoard(body)
	if len(got) != 1 || got[0].Name != "All" || len(got[0].Items) != 1 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Items[0].SpuID != "9" {
		t.Fatalf("SpuID = %q, want 9", got[0].Items[0].SpuID)
	}
}

func TestParseBoardFlatListFallback(t *testing.T) {
	body := gjson.Parse(`{"goodsList":[{"spuId":"1","spuName":"Latte"},{"spuId":"2","spuName":"Mocha"}]}`)
	got := ParseBoard(body)
	if len(got) != 1 || got[0].Name != "Menu" {
		t.Fatalf("got %+v, want one synthetic section", got)
	}
	if len(got[0].Items) != 2 {
		t.Fatalf("got %d items, want 2", len(got[0].Items))
	}
}

func TestParseBoardEmpty(t *testing.T) {
	if got := ParseBoard(gjson.Parse(`{}`)); len(got) != 0 {
		t.Fatalf("got %+v, want nothing", got)
	}
	if got := ParseBoard(gjson.Parse(`[]`)); len(got) != 0 {
		t.Fatalf("got %+v, want nothing from a non-object", got)
	}
}
