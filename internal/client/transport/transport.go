// Package transport is the client's only door to the column API: it sends a
// request, returns the raw structured response or a structured error, and
// exposes interceptor hooks around every call.
//
// Higher layers never see net/http. They build a Request, hand it to a
// Transport and get back either a 2xx Response or an error; non-2xx answers
// arrive as *APIError carrying the server-supplied message.
package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Request describes one API call. Path is relative to the transport's base
// URL. Body, when set, is JSON-encoded; Upload switches the call to a
// multipart form and Body is ignored.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Upload *File
	Header http.Header
}

// File is a single multipart file part plus any extra plain form fields.
type File struct {
	FieldName string
	FileName  string
	Content   io.Reader
	Fields    map[string]string
}

// Response is a successful (2xx) answer with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs a single request.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// HeaderSetter manages headers sent with every request.
type HeaderSetter interface {
	SetHeader(key, value string)
	DelHeader(key string)
}

// RequestInterceptor may rewrite a request before it is sent. Returning an
// error aborts the call.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor observes the outcome of every call.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response, err error)

func (r *Request) clone() *Request {
	c := *r
	c.Query = url.Values{}
	for k, v := range r.Query {
		c.Query[k] = append([]string(nil), v...)
	}
	c.Header = r.Header.Clone()
	if r.Upload != nil {
		f := *r.Upload
		f.Fields = make(map[string]string, len(r.Upload.Fields))
		for k, v := range r.Upload.Fields {
			f.Fields[k] = v
		}
		c.Upload = &f
	}
	return &c
}
