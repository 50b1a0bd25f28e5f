package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/zheye/internal/common"
)

// ICodeInterceptor appends the shared application key to every request: to
// the query on GET, to the form fields on uploads, and to the JSON object
// body for every other method, DELETE included.
func ICodeInterceptor(code string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if code == "" {
			return nil
		}

		switch {
		case req.Upload != nil:
			if req.Upload.Fields == nil {
				req.Upload.Fields = map[string]string{}
			}
			req.Upload.Fields[common.ICodeParamName] = code
		case req.Method == "" || req.Method == http.MethodGet:
			if req.Query == nil {
				req.Query = url.Values{}
			}
			req.Query.Set(common.ICodeParamName, code)
		default:
			body, err := withField(req.Body, common.ICodeParamName, code)
			if err != nil {
				return err
			}
			req.Body = body
		}
		return nil
	}
}

// withField merges key into the JSON object body. Non-object bodies cannot
// carry extra fields and are rejected.
func withField(body any, key, value string) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		if string(raw) != "null" {
			if err := json.Unmarshal(raw, &fields); err != nil {
				return nil, fmt.Errorf("body is not a JSON object: %w", err)
			}
		}
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	fields[key] = encoded
	return fields, nil
}
