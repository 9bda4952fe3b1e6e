package storeapi

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// Shared H5 item pages embed the full detail state as JSON. Newer pages put
// it in an id'd script tag, older ones assign it to a window global.
var stateScriptSelectors = []string{"#__INITIAL_STATE__", "#__NEXT_DATA__"}

var stateAssignRe = regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.*\})\s*;?`)

// ExtractSharedDetail digs the embedded state JSON out of a shared item
// page. The result is a raw envelope for menu.NormalizeDetail; ok is false
// when no parseable state exists.
func ExtractSharedDetail(page string) (gjson.Result, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err == nil {
		for _, sel := range stateScriptSelectors {
			var found gjson.Result
			ok := false
			doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				text := strings.TrimSpace(s.Text())
				if gjson.Valid(text) {
					found = unwrapPageProps(gjson.Parse(text))
					ok = true
					return false
				}
				return true
			})
			if ok {
				return found, true
			}
		}
		var assigned string
		doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if m := stateAssignRe.FindStringSubmatch(s.Text()); len(m) > 1 && gjson.Valid(m[1]) {
				assigned = m[1]
				return false
			}
			return true
		})
		if assigned != "" {
			return gjson.Parse(assigned), true
		}
	}
	// html that goquery refused still gets the regex treatment
	if m := stateAssignRe.FindStringSubmatch(page); len(m) > 1 && gjson.Valid(m[1]) {
		return gjson.Parse(m[1]), true
	}
	return gjson.Result{}, false
}

// unwrapPageProps digs through the framework wrapper __NEXT_DATA__ documents
// carry around the actual page state.
func unwrapPageProps(doc gjson.Result) gjson.Result {
	if v := doc.Get("props.pageProps"); v.IsObject() {
		return v
	}
	return doc
}

// FetchSharedItem downloads a shared item page and extracts its embedded
// detail envelope.
func (c *Client) FetchSharedItem(pageURL string) (gjson.Result, error) {
	res, err := send(&Request{
		Method: "GET",
		URL:    pageURL,
		Headers: []Header{
			{Name: "User-Agent", Value: USER_AGENT},
			{Name: "Accept", Value: "*/*"},
		},
	}, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	if res.StatusCode >= 400 {
		return gjson.Result{}, fmt.Errorf("share page returned status %d", res.StatusCode)
	}
	env, ok := ExtractSharedDetail(res.BodyString)
	if !ok {
		return gjson.Result{}, errors.New("no embedded item state found in page")
	}
	return env, nil
}
