package models

import "fmt"

// User is the session user. When IsLogin is false the remaining fields carry
// no meaning even if a stale value is still present.
type User struct {
	IsLogin     bool   `json:"isLogin"`
	NickName    string `json:"nickName,omitempty"`
	ID          string `json:"_id,omitempty"`
	Column      string `json:"column,omitempty"`
	Email       string `json:"email,omitempty"`
	Avatar      *Image `json:"avatar,omitempty"`
	Description string `json:"description,omitempty"`
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user %q: missing _id", u.Email)
	}
	return nil
}

// Session is the login response payload.
type Session struct {
	Token string `json:"token"`
}

func (s Session) Validate() error {
	if s.Token == "" {
		return fmt.Errorf("session: empty token")
	}
	return nil
}
