package services

import (
	"context"
	"time"
)

// AuthSvcFacade authenticates the operator account and issues access tokens.
type AuthSvcFacade interface {
	// Login checks the credentials and returns a signed access token.
	Login(ctx context.Context, username, password string) (string, time.Time, error)
}
