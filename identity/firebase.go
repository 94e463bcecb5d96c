package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// An Authenticator exchanges user secrets and refresh credentials with an identity provider.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Credential, error)
	SignUp(ctx context.Context, email, password, displayName string) (Credential, error)
	Refresh(ctx context.Context, refreshToken string) (Credential, error)
	SendPasswordReset(ctx context.Context, email string) error
}

// expiredCodes are the Secure Token API's ways of saying the refresh credential is no good.
var expiredCodes = []string{"TOKEN_EXPIRED", "INVALID_REFRESH_TOKEN", "USER_DISABLED", "USER_NOT_FOUND"}

// Firebase is the Authenticator backed by Firebase Authentication.
type Firebase struct {
	client  *http.Client
	oauth   *oauth2.Config
	toolkit *identitytoolkit.RelyingpartyService
}

// NewFirebase constructs a Firebase from cfg,
// returning ErrBadConfig when cfg is missing a required value.
func NewFirebase(ctx context.Context, cfg Config, client *http.Client) (*Firebase, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}

	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.ToolkitEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.ToolkitEndpoint))
	}

	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: identity toolkit: %s", ErrBadConfig, err)
	}

	return &Firebase{
		client: client,
		oauth: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.tokenURL(),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		toolkit: svc.Relyingparty,
	}, nil
}

// SignIn exchanges an email and password for a Credential.
func (f *Firebase) SignIn(ctx context.Context, email, password string) (Credential, error) {
	res, err := f.toolkit.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return Credential{}, toolkitErr(err)
	}

	return Credential{IDToken: res.IdToken, RefreshToken: res.RefreshToken}, nil
}

// SignUp creates an account and signs in to it.
func (f *Firebase) SignUp(ctx context.Context, email, password, displayName string) (Credential, error) {
	_, err := f.toolkit.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}).Context(ctx).Do()
	if err != nil {
		return Credential{}, toolkitErr(err)
	}

	return f.SignIn(ctx, email, password)
}

// SendPasswordReset asks Firebase to e-mail a password reset link.
func (f *Firebase) SendPasswordReset(ctx context.Context, email string) error {
	_, err := f.toolkit.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		Email:       email,
		RequestType: "PASSWORD_RESET",
	}).Context(ctx).Do()
	if err != nil {
		return toolkitErr(err)
	}

	return nil
}

// Refresh mints a new ID token from refreshToken.
//
// Every call goes to the Secure Token API; nothing is cached.
func (f *Firebase) Refresh(ctx context.Context, refreshToken string) (Credential, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.client)
	tok, err := f.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && hasCode(string(re.Body), expiredCodes...) {
			return Credential{}, fmt.Errorf("%w: %s", ErrTokenExpired, strings.TrimSpace(string(re.Body)))
		}
		return Credential{}, fmt.Errorf("refreshing ID token: %w", err)
	}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		idToken = tok.AccessToken
	}

	rt := tok.RefreshToken
	if rt == "" {
		rt = refreshToken
	}

	return Credential{IDToken: idToken, RefreshToken: rt}, nil
}

// toolkitErr maps Identity Toolkit error codes onto this package's errors.
func toolkitErr(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch {
	case hasCode(gerr.Message, "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "USER_DISABLED"):
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, gerr.Message)
	case hasCode(gerr.Message, "EMAIL_EXISTS"):
		return fmt.Errorf("%w: %s", ErrEmailTaken, gerr.Message)
	case hasCode(gerr.Message, "WEAK_PASSWORD"):
		return fmt.Errorf("%w: %s", ErrWeakPassword, gerr.Message)
	case hasCode(gerr.Message, expiredCodes...):
		return fmt.Errorf("%w: %s", ErrTokenExpired, gerr.Message)
	default:
		return err
	}
}

func hasCode(msg string, codes ...string) bool {
	for _, code := range codes {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}
