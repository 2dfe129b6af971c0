package itf

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// Request builds a single HTTP request against the suite router.
type Request struct {
	suite   *Suite
	method  string
	path    string
	query   url.Values
	headers http.Header
	cookies []*http.Cookie
	body    io.Reader
}

func (s *Suite) newRequest(method, path string) *Request {
	return &Request{
		suite:   s,
		method:  method,
		path:    path,
		query:   url.Values{},
		headers: http.Header{},
	}
}

func (r *Request) WithQuery(query map[string]string) *Request {
	for key, value := range query {
		r.query.Set(key, value)
	}
	return r
}

func (r *Request) Header(key, value string) *Request {
	r.headers.Set(key, value)
	return r
}

// HTMX marks the request as issued by htmx.
func (r *Request) HTMX() *Request {
	return r.Header("Hx-Request", "true")
}

func (r *Request) Cookie(cookie *http.Cookie) *Request {
	r.cookies = append(r.cookies, cookie)
	return r
}

func (r *Request) JSON(v any) *Request {
	data, err := json.Marshal(v)
	if err != nil {
		r.suite.tb.Fatalf("marshal request body: %v", err)
	}
	r.body = bytes.NewReader(data)
	return r.Header("Content-Type", "application/json")
}

func (r *Request) Form(values url.Values) *Request {
	r.body = strings.NewReader(values.Encode())
	return r.Header("Content-Type", "application/x-www-form-urlencoded")
}

// Assert performs the request and returns the response for assertions.
func (r *Request) Assert(tb testing.TB) *Response {
	tb.Helper()

	target := r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req := httptest.NewRequest(r.method, target, r.body)
	for key, values := range r.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	for _, cookie := range r.cookies {
		req.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	r.suite.router.ServeHTTP(recorder, req)
	return &Response{tb: tb, recorder: recorder}
}

// Case is a declarative request plus expectations, for table-driven tests.
type Case struct {
	name       string
	method     string
	path       string
	query      map[string]string
	htmx       bool
	form       url.Values
	wantStatus int
	wantBody   []string
}

func GET(path string) *Case    { return newCase(http.MethodGet, path) }
func POST(path string) *Case   { return newCase(http.MethodPost, path) }
func PUT(path string) *Case    { return newCase(http.MethodPut, path) }
func DELETE(path string) *Case { return newCase(http.MethodDelete, path) }

func newCase(method, path string) *Case {
	return &Case{
		name:       method + " " + path,
		method:     method,
		path:       path,
		wantStatus: http.StatusOK,
	}
}

func (c *Case) Named(name string) *Case {
	c.name = name
	return c
}

func (c *Case) WithQuery(query map[string]string) *Case {
	c.query = query
	return c
}

func (c *Case) HTMX() *Case {
	c.htmx = true
	return c
}

func (c *Case) Form(values url.Values) *Case {
	c.form = values
	return c
}

func (c *Case) ExpectOK() *Case {
	return c.ExpectStatus(http.StatusOK)
}

func (c *Case) ExpectStatus(code int) *Case {
	c.wantStatus = code
	return c
}

func (c *Case) ExpectBodyContains(parts ...string) *Case {
	c.wantBody = append(c.wantBody, parts...)
	return c
}

// Cases groups cases for Suite.RunCases.
func Cases(cases ...*Case) []*Case {
	return cases
}

func (c *Case) run(t *testing.T, s *Suite) {
	t.Helper()

	req := s.newRequest(c.method, c.path)
	if c.query != nil {
		req.WithQuery(c.query)
	}
	if c.htmx {
		req.HTMX()
	}
	if c.form != nil {
		req.Form(c.form)
	}

	resp := req.Assert(t).ExpectStatus(c.wantStatus)
	for _, part := range c.wantBody {
		resp.ExpectBodyContains(part)
	}
}
