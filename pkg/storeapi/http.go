package storeapi

import (
	"crypto/tls"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"
)

// Header is one request header.
type Header struct {
	Name  string
	Value string
}

// Request describes one HTTP call to the vendor.
type Request struct {
	Method  string
	URL     string
	Body    string
	Headers []Header
}

// Response carries everything callers diagnose on: the raw body, the status
// and the page title when the vendor served HTML instead of JSON, which is
// what its WAF and maintenance pages do.
type Response struct {
	StatusCode int
	Headers    http.Header
	BodyString string
	HTMLTitle  string
	Length     int
}

var defaultClient = newRetryClient()

func newRetryClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.Logger = log.New(io.Discard, "", log.LstdFlags)
	return c
}

// SetupProxy routes the default client through an HTTP proxy. TLS
// verification is disabled so intercepting proxies work while debugging.
func SetupProxy(proxy string) error {
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return err
	}
	defaultClient.HTTPClient.Transport = &http.Transport{
		Proxy:           http.ProxyURL(proxyURL),
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	return nil
}

// send performs one round trip through the retrying client and drains the
// body. client nil means the shared default.
func send(req *Request, client *retryablehttp.Client) (*Response, error) {
	if client == nil {
		client = defaultClient
	}
	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	r, err := retryablehttp.NewRequest(req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for _, h := range req.Headers {
		r.Header.Set(h.Name, h.Value)
	}

	resp, err := client.Do(r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		BodyString: string(raw),
	}
	out.Length = utf8.RuneCountInString(out.BodyString)
	if title, ok := htmlTitle(out.BodyString); ok {
		title = strings.ReplaceAll(title, "\n", "")
		title = strings.ReplaceAll(title, "\r", "")
		out.HTMLTitle = strings.TrimSpace(title)
	}
	return out, nil
}

func htmlTitle(body string) (string, bool) {
	if !strings.Contains(body, "<title") {
		return "", false
	}
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", false
	}
	return findTitle(doc)
}

func findTitle(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil {
			return n.FirstChild.Data, true
		}
		return "", true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t, ok := findTitle(c); ok {
			return t, true
		}
	}
	return "", false
}
