package menu

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestExpandAttributesDefaultFirst(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuName": "Matcha Latte",
		"skuList": [{"skuId": "S1", "price": 20}],
		"attributeGroupList": [
			{"attrId": "ice", "attrName": "Ice", "attrOptionList": [
				{"optionId": "less", "optionName": "Less Ice"},
				{"optionId": "reg", "optionName": "Regular Ice", "isDefault": true},
				{"optionId": "no", "optionName": "No Ice"}
			]}
		]
	}`)
	got := BuildOptions(d)
	if len(got) != 3 {
		t.Fatalf("got %d options, want one per ice level", len(got))
	}
	wantTexts := []string{"Ice: Regular Ice", "Ice: Less Ice", "Ice: No Ice"}
	for i, want := range wantTexts {
		if got[i].VariantText != want {
			t.Fatalf("option %d text = %q, want %q (default must come first)", i, got[i].VariantText, want)
		}
	}
	if !reflect.DeepEqual(got[0].AttrIDs, []string{"reg"}) {
		t.Fatalf("AttrIDs = %v, want [reg]", got[0].AttrIDs)
	}
	for _, o := range got {
		if o.SkuID != "S1" || !o.HasPrice || o.Price != 20 {
			t.Fatalf("base sku fields must carry through, got %+v", o)
		}
	}
}

func TestExpandAttributesAppendsToExistingText(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuName": "Latte",
		"skuList": [{
			"skuId": "S1",
			"specList": [{"optionName": "Large"}]
		}],
		"attributeGroupList": [
			{"attrId": "ice", "attrName": "Ice", "attrOptionList": [
				{"optionId": "reg", "optionName": "Regular"}
			]}
		]
	}`)
	got := BuildOptions(d)
	if len(got) != 1 {
		t.Fatalf("got %d options, want 1", len(got))
	}
	if got[0].VariantText != "Large | Ice: Regular" {
		t.Fatalf("VariantText = %q", got[0].VariantText)
	}
}

func TestExpandAttributesCollapsesPastBound(t *testing.T) {
	var groups []string
	for g := 0; g < 3; g++ {
		var opts []string
		for o := 0; o < 10; o++ {
			def := ""
			if o == 7 {
				def = `,"isDefault":true`
			}
			opts = append(opts, fmt.Sprintf(`{"optionId":"g%do%d","optionName":"O%d"%s}`, g, o, o, def))
		}
		groups = append(groups, fmt.Sprintf(`{"attrId":"g%d","attrName":"Group%d","attrOptionList":[%s]}`, g, g, strings.Join(opts, ",")))
	}
	body := fmt.Sprintf(`{"spuName":"Huge","skuList":[{"skuId":"S1"}],"attributeGroupList":[%s]}`, strings.Join(groups, ","))

	got := BuildOptions(NormalizeDetailJSON(body))
	if len(got) != 1 {
		t.Fatalf("got %d options, want the collapsed default selection only", len(got))
	}
	want := []string{"g0o7", "g1o7", "g2o7"}
	if !reflect.DeepEqual(got[0].AttrIDs, want) {
		t.Fatalf("AttrIDs = %v, want the defaults %v", got[0].AttrIDs, want)
	}
}

func TestExpandAttributesEmptyGroupOccupiesNoSlot(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuName": "Latte",
		"skuList": [{"skuId": "S1"}],
		"attributeGroupList": [
			{"attrId": "g1", "attrName": "Empty"},
			{"attrId": "ice", "attrName": "Ice", "attrOptionList": [
				{"optionId": "reg", "optionName": "Regular"}
			]}
		]
	}`)
	got := BuildOptions(d)
	if len(got) != 1 {
		t.Fatalf("got %d options, want 1", len(got))
	}
	if got[0].VariantText != "Ice: Regular" {
		t.Fatalf("VariantText = %q, choiceless group must not leak", got[0].VariantText)
	}
}

func TestExpandAttributesCrossAppliesToEveryOption(t *testing.T) {
	d := NormalizeDetailJSON(`{
		"spuName": "Latte",
		"skuList": [
			{"skuId": "A", "specList": [{"optionName": "Hot"}]},
			{"skuId": "B", "specList": [{"optionName": "Iced"}]}
		],
		"attributeGroupList": [
			{"attrId": "sw", "attrName": "Sweetness", "attrOptionList": [
				{"optionId": "full", "optionName": "Full"},
				{"optionId": "half", "optionName": "Half"}
			]}
		]
	}`)
	got := BuildOptions(d)
	var texts []string
	for _, o := range got {
		texts = append(texts, o.SkuID+"/"+o.VariantText)
	}
	want := []string{
		"A/Hot | Sweetness: Full",
		"B/Iced | Sweetness: Full",
		"A/Hot | Sweetness: Half",
		"B/Iced | Sweetness: Half",
	}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("got %v\nwant %v", texts, want)
	}
}
