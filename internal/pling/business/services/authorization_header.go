package services

import (
	"net/http"
)

type AuthEngine interface {
	GetApiKey() string
	SetApiKey(request *http.Request)
}

// TokenAuth carries the pling API key in the Token request header.
type TokenAuth struct {
	apiKey string
}

func (t *TokenAuth) GetApiKey() string {
	return t.apiKey
}

func (t *TokenAuth) SetApiKey(request *http.Request) {
	request.Header.Set("Token", t.apiKey)
}

func NewTokenAuth(apiKey string) *TokenAuth {
	if apiKey == "" {
		return nil
	}
	return &TokenAuth{apiKey: apiKey}
}
