package menu

import (
	"fmt"
	"strings"
	"testing"
)

func TestComboTwoRequiredGroups(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuType": "combo",
		"spuName": "Lunch Set",
		"skuId": "CSKU",
		"price": 45,
		"comboGroupList": [
			{"groupName": "Mains", "chooseCount": 1, "required": true, "choices": [
				{"skuId": "m1", "name": "Burger"},
				{"skuId": "m2", "name": "Wrap"},
				{"skuId": "m3", "name": "Salad"}
			]},
			{"groupName": "Drinks", "chooseCount": 1, "required": true, "choices": [
				{"skuId": "d1", "name": "Cola"},
				{"skuId": "d2", "name": "Tea"},
				{"skuId": "d3", "name": "Juice"}
			]}
		]
	}`)
	got := BuildOptions(d)
	if len(got) != 9 {
		t.Fatalf("got %d options, want 3x3", len(got))
	}
	if got[0].VariantText != "Mains: Burger | Drinks: Cola" {
		t.Fatalf("first option = %q", got[0].VariantText)
	}
	if got[8].VariantText != "Mains: Salad | Drinks: Juice" {
		t.Fatalf("last option = %q", got[8].VariantText)
	}
	for _, o := range got {
		if o.SkuID != "CSKU" {
			t.Fatalf("combo option submits sku %q, want the primary CSKU", o.SkuID)
		}
		if !o.HasPrice || o.Price != 45 {
			t.Fatalf("price = %v (has=%v), want the bundle price 45", o.Price, o.HasPrice)
		}
	}
}

func TestComboRequiredGroupSoldOut(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuType": "combo",
		"comboGroupList": [
			{"groupName": "Mains", "required": true, "choices": [
				{"skuId": "m1", "soldOut": true}
			]}
		]
	}`)
	if got := BuildOptions(d); len(got) != 0 {
		t.Fatalf("got %d options, want none when a required group is empty", len(got))
	}
}

func TestComboOptionalGroupSoldOutDropsOut(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuType": "combo",
		"spuName": "Set",
		"skuId": "CS",
		"comboGroupList": [
			{"groupName": "Mains", "required": true, "choices": [
				{"skuId": "m1", "name": "Burger"},
				{"skuId": "m2", "name": "Wrap"}
			]},
			{"groupName": "Extras", "required": false, "choices": [
				{"skuId": "e1", "name": "Fries", "soldOut": true}
			]}
		]
	}`)
	got := BuildOptions(d)
	if len(got) != 2 {
		t.Fatalf("got %d options, want 2 from the surviving group", len(got))
	}
	for _, o := range got {
		if strings.Contains(o.VariantText, "Extras") {
			t.Fatalf("empty optional group leaked into %q", o.VariantText)
		}
	}
}

func TestComboCardinalityTakesFirstN(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuType": "combo",
		"spuName": "Trio",
		"skuId": "CS",
		"comboGroupList": [
			{"groupName": "Picks", "chooseCount": 2, "choices": [
				{"skuId": "p1", "name": "A"},
				{"skuId": "p2", "name": "B"},
				{"skuId": "p3", "name": "C"}
			]}
		]
	}`)
	got := BuildOptions(d)
	if len(got) != 1 {
		t.Fatalf("got %d options, want a single first-2 selection", len(got))
	}
	if got[0].VariantText != "Picks: A | Picks: B" {
		t.Fatalf("VariantText = %q", got[0].VariantText)
	}
}

func TestComboDeclaredPricesBeatBundlePrice(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuType": "combo",
		"spuName": "Set",
		"skuId": "CS",
		"price": 45,
		"comboGroupList": [
			{"groupName": "Mains", "choices": [{"skuId": "m1", "name": "Burger", "comboPrice": 30}]},
			{"groupName": "Drinks", "choices": [{"skuId": "d1", "name": "Cola", "comboPrice": 8}]}
		]
	}`)
	got := BuildOptions(d)
	if len(got) != 1 {
		t.Fatalf("got %d options, want 1", len(got))
	}
	if !got[0].HasPrice || got[0].Price != 38 {
		t.Fatalf("price = %v, want the component sum 38", got[0].Price)
	}
}

func TestComboWalkIsBounded(t *testing.T) {
	var groups []string
	for g := 0; g < 2; g++ {
		var choices []string
		for c := 0; c < 12; c++ {
			choices = append(choices, fmt.Sprintf(`{"skuId":"g%dc%d","name":"C%d"}`, g, c, c))
		}
		groups = append(groups, fmt.Sprintf(`{"groupName":"G%d","choices":[%s]}`, g, strings.Join(choices, ",")))
	}
	body := fmt.Sprintf(`{"spuType":"combo","spuName":"Big","skuId":"CS","comboGroupList":[%s]}`, strings.Join(groups, ","))

	got := BuildOptions(NormalizeDetailJSON(body))
	if len(got) != maxComboSelections {
		t.Fatalf("got %d options, want the walk capped at %d", len(got), maxComboSelections)
	}
}

func TestComboFixedBundle(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuName": "Breakfast Box",
		"skuId": "BB",
		"price": 25,
		"comboItemList": [
			{"skuId": "c1", "name": "Croissant"},
			{"skuId": "c2", "name": "Cookie", "num": 2}
		]
	}`)
	got := BuildOptions(d)
	if len(got) != 1 {
		t.Fatalf("got %d options, want 1", len(got))
	}
	if got[0].VariantText != "Croissant | Cookie x2" {
		t.Fatalf("VariantText = %q", got[0].VariantText)
	}
}

func TestComboFixedBundleBlockedBySoldOutComponent(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuName": "Breakfast Box",
		"skuId": "BB",
		"comboItemList": [
			{"skuId": "c1", "name": "Croissant"},
			{"skuId": "c2", "name": "Cookie", "stock": 0}
		]
	}`)
	if got := BuildOptions(d); len(got) != 0 {
		t.Fatalf("got %d options, want none with a sold out component", len(got))
	}
}

func TestComboTypedWithoutStructureSellsLikePlain(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuType": "combo",
		"spuName": "Odd One",
		"skuList": [{"skuId": "S1", "price": 9}]
	}`)
	got := BuildOptions(d)
	if len(got) != 1 || got[0].SkuID != "S1" {
		t.Fatalf("got %+v, want the plain sku list fallback", got)
	}
}

func TestComboComponentSpecsSurface(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuType": "combo",
		"spuName": "Set",
		"skuId": "CS",
		"comboGroupList": [
			{"groupName": "Drinks", "choices": [
				{"skuId": "d1", "name": "Latte", "specList": [{"specId": "size", "optionId": "l", "optionName": "Large"}]}
			]}
		]
	}`)
	got := BuildOptions(d)
	if len(got) != 1 {
		t.Fatalf("got %d options, want 1", len(got))
	}
	if got[0].VariantText != "Drinks: Latte | Variant: Large" {
		t.Fatalf("VariantText = %q", got[0].VariantText)
	}
	if len(got[0].SpecPairs) != 1 || got[0].SpecPairs[0].OptionID != "l" {
		t.Fatalf("SpecPairs = %+v, want the component's pair carried over", got[0].SpecPairs)
	}
}
