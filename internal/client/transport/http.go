package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/zheye/internal/logging"
)

// Config holds HTTPTransport settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// HTTPTransport is the net/http implementation of Transport.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.RWMutex
	headers      http.Header
	interceptors []RequestInterceptor
	observers    []ResponseInterceptor
}

// NewHTTPTransport creates a transport rooted at cfg.BaseURL.
func NewHTTPTransport(cfg Config) (*HTTPTransport, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &HTTPTransport{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		headers:    http.Header{},
	}, nil
}

// Use registers request interceptors, run in registration order.
func (t *HTTPTransport) Use(interceptors ...RequestInterceptor) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interceptors = append(t.interceptors, interceptors...)
}

// Observe registers response interceptors, run after every call.
func (t *HTTPTransport) Observe(observers ...ResponseInterceptor) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, observers...)
}

func (t *HTTPTransport) SetHeader(key, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.headers.Set(key, value)
}

func (t *HTTPTransport) DelHeader(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.headers.Del(key)
}

// Header returns a copy of the default header for key.
func (t *HTTPTransport) Header(key string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.headers.Get(key)
}

// Do sends req. The caller's Request is never modified; interceptors work on
// a copy.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	t.mu.RLock()
	interceptors := append([]RequestInterceptor(nil), t.interceptors...)
	observers := append([]ResponseInterceptor(nil), t.observers...)
	headers := t.headers.Clone()
	t.mu.RUnlock()

	r := req.clone()
	if r.Method == "" {
		r.Method = http.MethodGet
	}
	for _, intercept := range interceptors {
		if err := intercept(ctx, r); err != nil {
			return nil, fmt.Errorf("request interceptor: %w", err)
		}
	}

	resp, err := t.send(ctx, r, headers)
	for _, observe := range observers {
		observe(ctx, r, resp, err)
	}
	return resp, err
}

func (t *HTTPTransport) send(ctx context.Context, r *Request, headers http.Header) (*Response, error) {
	body, contentType, err := encodeBody(r)
	if err != nil {
		return nil, err
	}

	endpoint := t.baseURL + "/" + strings.TrimPrefix(r.Path, "/")
	if len(r.Query) > 0 {
		endpoint += "?" + r.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range headers {
		httpReq.Header[k] = v
	}
	for k, v := range r.Header {
		httpReq.Header[k] = v
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("send request: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, newAPIError(httpResp.StatusCode, respBody)
	}

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: respBody}, nil
}

func encodeBody(r *Request) (io.Reader, string, error) {
	if r.Upload != nil {
		return encodeMultipart(r.Upload)
	}
	if r.Body == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("marshal request: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

func encodeMultipart(f *File) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	field := f.FieldName
	if field == "" {
		field = "file"
	}
	part, err := w.CreateFormFile(field, f.FileName)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if f.Content != nil {
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("copy file content: %w", err)
		}
	}
	for k, v := range f.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// LoggingObserver logs one line per call: debug on success, warn on failure.
func LoggingObserver(logger logging.Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response, err error) {
		if err != nil {
			logger.Warn(ctx, "api call failed", "method", req.Method, "path", req.Path, "error", err)
			return
		}
		logger.Debug(ctx, "api call", "method", req.Method, "path", req.Path, "status", resp.StatusCode)
	}
}
