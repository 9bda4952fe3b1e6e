package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mochacli/mocha/pkg/menu"
	"github.com/mochacli/mocha/pkg/picker"
)

func main() {
	// Usage: go run main.go -detail item.json
	// Resolves the sellable variants of one saved detail payload, no network.

	detailFlag := flag.String("detail", "", "path to a raw item detail JSON payload")
	flag.Parse()

	if *detailFlag == "" {
		fmt.Println("A detail payload is required. Please provide it using the -detail flag.")
		return
	}

	raw, err := os.ReadFile(*detailFlag)
	if err != nil {
		fmt.Println("read payload:", err)
		return
	}

	detail := menu.NormalizeDetailJSON(string(raw))
	options := menu.BuildOptions(detail)
	fmt.Printf("%s: %d sellable variants\n", detail.Name(), len(options))
	for _, opt := range options {
		label := opt.VariantText
		if label == "" {
			label = opt.Name
		}
		if opt.HasPrice {
			fmt.Printf("  %s  %s  %.2f\n", opt.SkuID, label, opt.Price)
		} else {
			fmt.Printf("  %s  %s\n", opt.SkuID, label)
		}
	}

	// The same options drive the staged picker.
	p := picker.New(options, detail.PrimarySkuID())
	if p.Empty() {
		return
	}
	fmt.Println("selection axes:")
	for _, d := range p.Dimensions() {
		fmt.Println("  " + d.Label)
	}
	for _, c := range p.Choices() {
		fmt.Printf("  %s -> %s (%d combinations)\n", p.Dimension().Label, c.Value, c.Count)
	}
}
