package models

import (
	"fmt"
	"net/url"
	"strconv"
)

// Validator is implemented by payloads that can check their own shape.
type Validator interface {
	Validate() error
}

// Envelope is the {code, msg, data} wrapper around every successful body.
type Envelope[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

// ListPage is the data part of paginated list endpoints.
type ListPage[T Validator] struct {
	List        []T `json:"list"`
	Count       int `json:"count"`
	PageSize    int `json:"pageSize"`
	CurrentPage int `json:"currentPage"`
}

func (p ListPage[T]) Validate() error {
	if p.List == nil {
		return fmt.Errorf("list page: missing list")
	}
	for i, item := range p.List {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("list page item %d: %w", i, err)
		}
	}
	return nil
}

// ErrorRecord is the single global error shown to the user.
type ErrorRecord struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
}

// PageParams selects a page of a list endpoint.
type PageParams struct {
	CurrentPage int
	PageSize    int
}

// RegisterInput is the body of the sign-up call.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	NickName string `json:"nickName"`
}

// LoginInput is the body of the login call.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Query renders the params the way list endpoints expect them.
func (p PageParams) Query() url.Values {
	v := url.Values{}
	if p.CurrentPage > 0 {
		v.Set("currentPage", strconv.Itoa(p.CurrentPage))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	return v
}
