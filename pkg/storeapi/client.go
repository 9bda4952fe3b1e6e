// Package storeapi talks to the store platform's mobile API: store listing,
// menu boards, item detail, and order submission. Responses are returned as
// raw gjson documents; pkg/menu owns making sense of them.
package storeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/mochacli/mocha/internal/utils"
	"github.com/mochacli/mocha/pkg/menu"
)

const USER_AGENT = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148"

// Client talks to one store platform deployment.
type Client struct {
	BaseURL  string
	Token    string
	DeviceID string
}

// New validates and trims the base URL. The token may be empty for endpoints
// that allow anonymous access.
func New(baseURL, token, deviceID string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("store API base URL is not configured, run `mocha login --base-url <url>`")
	}
	return &Client{BaseURL: baseURL, Token: token, DeviceID: deviceID}, nil
}

func (c *Client) headers() []Header {
	hs := []Header{
		{Name: "User-Agent", Value: USER_AGENT},
		{Name: "Accept", Value: "application/json"},
		{Name: "X-Request-Id", Value: uuid.NewString()},
	}
	if c.Token != "" {
		hs = append(hs, Header{Name: "Authorization", Value: "Bearer " + c.Token})
	}
	if c.DeviceID != "" {
		hs = append(hs, Header{Name: "X-Device-Id", Value: c.DeviceID})
	}
	return hs
}

func (c *Client) get(path string, query url.Values) (gjson.Result, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	utils.Log.Debug("GET ", u)
	res, err := send(&Request{Method: "GET", URL: u, Headers: c.headers()}, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	return c.decode(res)
}

func (c *Client) post(path, body string) (gjson.Result, error) {
	hs := append(c.headers(), Header{Name: "Content-Type", Value: "application/json"})
	utils.Log.Debug("POST ", c.BaseURL+path)
	res, err := send(&Request{Method: "POST", URL: c.BaseURL + path, Body: body, Headers: hs}, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	return c.decode(res)
}

var apiMsgPaths = []string{"msg", "message", "errMsg"}

// decode enforces HTTP status and the vendor's own envelope status. The
// vendor flags failures with a non-zero code plus a message field; blocked
// requests come back as HTML pages and surface through their title.
func (c *Client) decode(res *Response) (gjson.Result, error) {
	if res.StatusCode == 401 || res.StatusCode == 403 {
		if res.HTMLTitle != "" {
			return gjson.Result{}, fmt.Errorf("request blocked (%d): %s", res.StatusCode, res.HTMLTitle)
		}
		return gjson.Result{}, fmt.Errorf("unauthorized (%d): token missing or expired, run `mocha login`", res.StatusCode)
	}
	if res.StatusCode >= 400 {
		if res.HTMLTitle != "" {
			return gjson.Result{}, fmt.Errorf("request failed (%d): %s", res.StatusCode, res.HTMLTitle)
		}
		return gjson.Result{}, fmt.Errorf("request failed with status %d", res.StatusCode)
	}

	body := gjson.Parse(res.BodyString)
	if v := body.Get("success"); v.Type == gjson.False {
		return gjson.Result{}, apiError(body)
	}
	if v := body.Get("code"); v.Type == gjson.Number {
		if n := v.Int(); n != 0 && n != 200 {
			return gjson.Result{}, apiError(body)
		}
	}
	return body, nil
}

func apiError(body gjson.Result) error {
	for _, p := range apiMsgPaths {
		if m := body.Get(p).String(); m != "" {
			return fmt.Errorf("store API error: %s", m)
		}
	}
	return errors.New("store API reported an error")
}

// Store is one pickup location.
type Store struct {
	ID       string
	Name     string
	Address  string
	Distance string
	Open     bool
}

var (
	storeListPaths = []string{"storeList", "shopList", "stores", "data.storeList", "data.shopList", "data"}
	storeIDPaths   = []string{"storeId", "shopId", "deptId", "id"}
	storeNamePaths = []string{"storeName", "shopName", "name"}
	storeAddrPaths = []string{"address", "storeAddress", "addr"}
)

// Stores lists pickup stores, optionally filtered by a keyword the vendor
// matches against names and addresses.
func (c *Client) Stores(keyword string) ([]Store, error) {
	q := url.Values{}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	body, err := c.get("/store/list", q)
	if err != nil {
		return nil, err
	}
	return parseStores(body), nil
}

func parseStores(body gjson.Result) []Store {
	var out []Store
	for _, rec := range menu.FirstArray(body, storeListPaths...) {
		s := Store{
			ID:       menu.FirstString(rec, storeIDPaths...),
			Name:     menu.FirstString(rec, storeNamePaths...),
			Address:  menu.FirstString(rec, storeAddrPaths...),
			Distance: menu.FirstString(rec, "distance"),
			Open:     true,
		}
		if s.ID == "" {
			continue
		}
		if n, ok := menu.FirstNumber(rec, "status", "storeStatus"); ok {
			s.Open = n > 0
		}
		out = append(out, s)
	}
	return out
}

// Menu fetches the raw menu board of a store.
func (c *Client) Menu(storeID string) (gjson.Result, error) {
	q := url.Values{}
	if storeID != "" {
		q.Set("storeId", storeID)
	}
	return c.get("/menu/list", q)
}

// ItemDetail fetches the raw detail envelope for one item at a store. The
// bytes come back as-is; normalization belongs to pkg/menu.
func (c *Client) ItemDetail(storeID, spuID string) (gjson.Result, error) {
	q := url.Values{}
	q.Set("spuId", spuID)
	if storeID != "" {
		q.Set("storeId", storeID)
	}
	return c.get("/goods/detail", q)
}

// OrderRequest is the submission payload for one resolved variant.
type OrderRequest struct {
	StoreID   string
	SpuID     string
	SkuID     string
	Qty       int
	SpecPairs []menu.SpecPair
	AttrIDs   []string
	Remark    string
}

// OrderResult is the vendor's acknowledgment of a submitted or queried
// order.
type OrderResult struct {
	OrderNo    string
	Status     string
	StatusName string
}

var (
	orderNoPaths         = []string{"orderId", "orderNo", "data.orderId", "data.orderNo", "id"}
	orderStatusPaths     = []string{"status", "orderStatus", "data.status", "data.orderStatus"}
	orderStatusNamePaths = []string{"statusName", "statusDesc", "data.statusName", "data.statusDesc"}
)

// SubmitOrder places a pickup order for one resolved variant.
func (c *Client) SubmitOrder(req OrderRequest) (OrderResult, error) {
	if req.SkuID == "" {
		return OrderResult{}, errors.New("order needs a resolved skuId")
	}
	qty := req.Qty
	if qty < 1 {
		qty = 1
	}

	item := map[string]interface{}{
		"skuId": req.SkuID,
		"num":   qty,
	}
	if req.SpuID != "" {
		item["spuId"] = req.SpuID
	}
	if len(req.SpecPairs) > 0 {
		specs := make([]map[string]string, 0, len(req.SpecPairs))
		for _, sp := range req.SpecPairs {
			specs = append(specs, map[string]string{"specId": sp.SpecID, "optionId": sp.OptionID})
		}
		item["specList"] = specs
	}
	if len(req.AttrIDs) > 0 {
		item["attrOptionIds"] = req.AttrIDs
	}
	payload := map[string]interface{}{
		"storeId": req.StoreID,
		"items":   []interface{}{item},
	}
	if req.Remark != "" {
		payload["remark"] = req.Remark
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return OrderResult{}, err
	}

	body, err := c.post("/order/create", string(raw))
	if err != nil {
		return OrderResult{}, err
	}
	return parseOrderResult(body), nil
}

// OrderStatus queries the current state of an order.
func (c *Client) OrderStatus(orderNo string) (OrderResult, error) {
	q := url.Values{}
	q.Set("orderId", orderNo)
	body, err := c.get("/order/detail", q)
	if err != nil {
		return OrderResult{}, err
	}
	res := parseOrderResult(body)
	if res.OrderNo == "" {
		res.OrderNo = orderNo
	}
	return res, nil
}

func parseOrderResult(body gjson.Result) OrderResult {
	return OrderResult{
		OrderNo:    menu.FirstString(body, orderNoPaths...),
		Status:     menu.FirstString(body, orderStatusPaths...),
		StatusName: menu.FirstString(body, orderStatusNamePaths...),
	}
}
