package storeapi

import "testing"

func TestHTMLTitle(t *testing.T) {
	cases := []struct {
		body   string
		want   string
		wantOK bool
	}{
		{`<html><head><title>503 Service Unavailable</title></head><body></body></html>`, "503 Service Unavailable", true},
		{`<title>WAF Block</title>`, "WAF Block", true},
		{`<title></title>`, "", true},
		{`{"code":0,"data":{}}`, "", false},
		{`<html><body>no title here</body></html>`, "", false},
	}
	for _, tc := range cases {
		got, ok := htmlTitle(tc.body)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("htmlTitle(%q) = %q, %v; want %q, %v", tc.body, got, ok, tc.want, tc.wantOK)
		}
	}
}
