package storeapi

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestNew(t *testing.T) {
	c, err := New("https://api.example.com/", "tok", "dev")
	if err != nil {
		t.Fatal(err)
	}
	if c.BaseURL != "https://api.example.com" {
		t.Fatalf("BaseURL = %q", c.BaseURL)
	}
	if _, err := New("  ", "", ""); err == nil {
		t.Fatal("blank base URL must fail")
	}
}

func TestDecode(t *testing.T) {
	c := &Client{BaseURL: "https://x"}
	cases := []struct {
		name    string
		res     Response
		wantErr string
	}{
		{"blocked with title", Response{StatusCode: 403, HTMLTitle: "Access Denied"}, "Access Denied"},
		{"unauthorized", Response{StatusCode: 401}, "mocha login"},
		{"server error", Response{StatusCode: 500}, "status 500"},
		{"vendor success false", Response{StatusCode: 200, BodyString: `{"success":false,"msg":"boom"}`}, "boom"},
		{"vendor numeric code", Response{StatusCode: 200, BodyString: `{"code":500,"message":"oops"}`}, "oops"},
		{"vendor error without message", Response{StatusCode: 200, BodyString: `{"code":1}`}, "reported an error"},
		{"code zero", Response{StatusCode: 200, BodyString: `{"code":0,"data":{}}`}, ""},
		{"code two hundred", Response{StatusCode: 200, BodyString: `{"code":200,"data":{}}`}, ""},
		{"no envelope", Response{StatusCode: 200, BodyString: `{"storeList":[]}`}, ""},
	}
	for _, tc := range cases {
		_, err := c.decode(&tc.res)
		if tc.wantErr == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("%s: error = %v, want substring %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestParseStores(t *testing.T) {
	body := gjson.Parse(`{"storeList":[
		{"storeId":"S1","storeName":"Main St","address":"1 Main St","status":1,"distance":"300m"},
		{"shopId":"S2","shopName":"Depot","storeStatus":0},
		{"storeName":"no id, skipped"}
	]}`)
	got := parseStores(body)
	if len(got) != 2 {
		t.Fatalf("got %d stores, want 2", len(got))
	}
	want := Store{ID: "S1", Name: "Main St", Address: "1 Main St", Distance: "300m", Open: true}
	if got[0] != want {
		t.Fatalf("got %+v, want %+v", got[0], want)
	}
	if got[1].ID != "S2" || got[1].Open {
		t.Fatalf("closed store = %+v", got[1])
	}
}

func TestParseStoresBareDataArray(t *testing.T) {
	body := gjson.Parse(`{"data":[{"storeId":"S9","storeName":"Kiosk"}]}`)
	got := parseStores(body)
	if len(got) != 1 || got[0].ID != "S9" || !got[0].Open {
		t.Fatalf("got %+v", got)
	}
}

func TestParseOrderResult(t *testing.T) {
	cases := []struct {
		body string
		want OrderResult
	}{
		{`{"data":{"orderNo":"O123","status":"1","statusName":"Preparing"}}`,
			OrderResult{OrderNo: "O123", Status: "1", StatusName: "Preparing"}},
		{`{"orderId":"A1","status":2}`,
			OrderResult{OrderNo: "A1", Status: "2"}},
		{`{}`, OrderResult{}},
	}
	for _, tc := range cases {
		if got := parseOrderResult(gjson.Parse(tc.body)); got != tc.want {
			t.Fatalf("parseOrderResult(%s) = %+v, want %+v", tc.body, got, tc.want)
		}
	}
}

func TestSubmitOrderRequiresSku(t *testing.T) {
	c := &Client{BaseURL: "https://x"}
	if _, err := c.SubmitOrder(OrderRequest{StoreID: "S1"}); err == nil {
		t.Fatal("order without a sku must fail before any request is made")
	}
}

func TestHeaders(t *testing.T) {
	c := &Client{BaseURL: "https://x", Token: "tok", DeviceID: "dev"}
	names := map[string]string{}
	for _, h := range c.headers() {
		names[h.Name] = h.Value
	}
	if names["Authorization"] != "Bearer tok" {
		t.Fatalf("Authorization = %q", names["Authorization"])
	}
	if names["X-Device-Id"] != "dev" {
		t.Fatalf("X-Device-Id = %q", names["X-Device-Id"])
	}
	if names["X-Request-Id"] == "" {
		t.Fatal("missing request id")
	}

	anon := (&Client{BaseURL: "https://x"}).headers()
	for _, h := range anon {
		if h.Name == "Authorization" {
			t.Fatal("anonymous client must not send Authorization")
		}
	}
}
