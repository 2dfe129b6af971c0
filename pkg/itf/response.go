package itf

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// Response wraps a recorded response with chainable assertions.
type Response struct {
	tb       testing.TB
	recorder *httptest.ResponseRecorder
}

func (r *Response) Raw() *httptest.ResponseRecorder {
	return r.recorder
}

func (r *Response) Code() int {
	return r.recorder.Code
}

func (r *Response) Body() string {
	return r.recorder.Body.String()
}

func (r *Response) Header(key string) string {
	return r.recorder.Header().Get(key)
}

func (r *Response) Cookies() []*http.Cookie {
	return r.recorder.Result().Cookies()
}

func (r *Response) ExpectOK() *Response {
	return r.ExpectStatus(http.StatusOK)
}

func (r *Response) ExpectBadRequest() *Response {
	return r.ExpectStatus(http.StatusBadRequest)
}

func (r *Response) ExpectNotFound() *Response {
	return r.ExpectStatus(http.StatusNotFound)
}

func (r *Response) ExpectForbidden() *Response {
	return r.ExpectStatus(http.StatusForbidden)
}

func (r *Response) ExpectStatus(code int) *Response {
	r.tb.Helper()
	require.Equal(r.tb, code, r.recorder.Code, "unexpected status, body:\n%s", r.recorder.Body.String())
	return r
}

func (r *Response) ExpectBodyContains(s string) *Response {
	r.tb.Helper()
	require.Contains(r.tb, r.recorder.Body.String(), s)
	return r
}

func (r *Response) ExpectHeader(key, value string) *Response {
	r.tb.Helper()
	require.Equal(r.tb, value, r.recorder.Header().Get(key))
	return r
}

// ExpectRedirect asserts a plain 302 redirect to the given location.
func (r *Response) ExpectRedirect(location string) *Response {
	r.tb.Helper()
	require.Equal(r.tb, http.StatusFound, r.recorder.Code, "expected a redirect, body:\n%s", r.recorder.Body.String())
	require.Equal(r.tb, location, r.recorder.Header().Get("Location"))
	return r
}

// FlashCookie decodes the named flash cookie set on the response.
// Clearing cookies are skipped.
func (r *Response) FlashCookie(name string) string {
	r.tb.Helper()
	for _, cookie := range r.recorder.Result().Cookies() {
		if cookie.Name != name || cookie.MaxAge < 0 {
			continue
		}
		decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
		require.NoError(r.tb, err, "flash cookie %q is not base64", name)
		return string(decoded)
	}
	r.tb.Fatalf("flash cookie %q not set", name)
	return ""
}

func (r *Response) ExpectHTML() *HTMLAssert {
	r.tb.Helper()
	doc, err := htmlquery.Parse(strings.NewReader(r.recorder.Body.String()))
	require.NoError(r.tb, err, "parse HTML response")
	return &HTMLAssert{tb: r.tb, doc: doc, response: r}
}

func (r *Response) ExpectJSON() *JSONAssert {
	r.tb.Helper()
	var body map[string]any
	err := json.Unmarshal(r.recorder.Body.Bytes(), &body)
	require.NoError(r.tb, err, "decode JSON response, body:\n%s", r.recorder.Body.String())
	return &JSONAssert{tb: r.tb, body: body, response: r}
}

// HTMLAssert runs XPath queries against the parsed response body.
type HTMLAssert struct {
	tb       testing.TB
	doc      *html.Node
	response *Response
}

func (a *HTMLAssert) Response() *Response {
	return a.response
}

func (a *HTMLAssert) ExpectElement(xpath string) *HTMLAssert {
	a.tb.Helper()
	node, err := htmlquery.Query(a.doc, xpath)
	require.NoError(a.tb, err, "invalid XPath %q", xpath)
	require.NotNil(a.tb, node, "no element matches %q, body:\n%s", xpath, a.response.Body())
	return a
}

func (a *HTMLAssert) ExpectNoElement(xpath string) *HTMLAssert {
	a.tb.Helper()
	node, err := htmlquery.Query(a.doc, xpath)
	require.NoError(a.tb, err, "invalid XPath %q", xpath)
	require.Nil(a.tb, node, "expected no element for %q, body:\n%s", xpath, a.response.Body())
	return a
}

func (a *HTMLAssert) ExpectElementCount(xpath string, want int) *HTMLAssert {
	a.tb.Helper()
	nodes, err := htmlquery.QueryAll(a.doc, xpath)
	require.NoError(a.tb, err, "invalid XPath %q", xpath)
	require.Len(a.tb, nodes, want, "element count for %q, body:\n%s", xpath, a.response.Body())
	return a
}

// JSONAssert checks fields of a decoded JSON object response.
type JSONAssert struct {
	tb       testing.TB
	body     map[string]any
	response *Response
}

func (a *JSONAssert) Response() *Response {
	return a.response
}

func (a *JSONAssert) ExpectField(name string, want any) *JSONAssert {
	a.tb.Helper()
	got, ok := a.body[name]
	require.True(a.tb, ok, "field %q missing, body:\n%s", name, a.response.Body())
	require.EqualValues(a.tb, want, got, "field %q", name)
	return a
}
