// Package auth implements the GitHub side of authentication: the OAuth
// code exchange and the middleware that turns a bearer token back into a
// user for the duration of one request.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/sakif/photoshare/internal/apperror"
)

// Profile is the slice of GitHub identity data the application needs:
// the /user API response fields we care about, plus the OAuth access token
// obtained during the exchange. GitHub returns a much larger /user object —
// we only unmarshal what we use.
//
// GitHub API docs: https://docs.github.com/en/rest/users/users#get-the-authenticated-user
type Profile struct {
	Login       string `json:"login"`      // GitHub username, e.g. "ada"
	Name        string `json:"name"`       // Display name (may be empty)
	AvatarURL   string `json:"avatar_url"` // Profile picture URL
	AccessToken string `json:"-"`          // OAuth access token, filled in by Exchange
}

// Provider implements the GitHub Authorization Code flow.
//
// OAUTH 2.0 AUTHORIZATION CODE FLOW:
// 1. The client sends the user to GitHub's authorization page.
// 2. The user approves, GitHub redirects back with a short-lived "code".
// 3. The client hands that code to our githubAuth mutation.
// 4. We exchange the code for an access token (server-to-server, using the
//    ClientSecret — the secret never leaves this process).
// 5. We call the GitHub /user API with the token to learn who logged in.
type Provider struct {
	config *oauth2.Config

	// apiBaseURL is "https://api.github.com" in production. Tests point it
	// (and config.Endpoint) at an httptest server.
	apiBaseURL string
}

// NewProvider creates a Provider with the given OAuth App credentials.
//
// You get ClientID and ClientSecret by registering an OAuth App at:
// https://github.com/settings/developers → "OAuth Apps" → "New OAuth App"
func NewProvider(clientID, clientSecret string) *Provider {
	return &Provider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"read:user"},
			Endpoint:     github.Endpoint, // pre-defined GitHub OAuth endpoints
		},
		apiBaseURL: "https://api.github.com",
	}
}

// tokenResponse is GitHub's answer to the code-for-token POST. On failure
// GitHub still responds 200 OK and puts the rejection INSIDE the body —
// which is exactly why we don't use oauth2.Config.Exchange here: it would
// report "missing access_token" instead of GitHub's actual reason.
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Exchange trades an authorization code for the user's GitHub profile and
// access token. One outbound call per step, no retries — a rejection is a
// normal outcome the caller must handle, not something to mask with retries.
//
// IN-BAND PROVIDER ERRORS:
// Both steps can fail in-band: the token endpoint answers with
// error/error_description fields, the /user API with a JSON body carrying a
// "message" field. Either way the provider's own text is surfaced verbatim
// as apperror.ErrAuth, so the caller sees exactly what GitHub said
// (e.g. "The code passed is incorrect or expired.").
func (p *Provider) Exchange(ctx context.Context, code string) (*Profile, error) {
	// Step 1: exchange authorization code → OAuth access token.
	token, err := p.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	// Step 2: call the GitHub /user API with the token.
	// oauth2.Config.Client returns an *http.Client that adds the
	// "Authorization: Bearer <token>" header to every request.
	client := p.config.Client(ctx, token)

	resp, err := client.Get(p.apiBaseURL + "/user")
	if err != nil {
		return nil, fmt.Errorf("auth: calling GitHub /user API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// GitHub error bodies look like {"message":"Bad credentials", ...}.
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Message == "" {
			return nil, fmt.Errorf("auth: GitHub /user API returned status %d", resp.StatusCode)
		}
		return nil, apperror.AuthFailed(payload.Message)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("auth: decoding GitHub /user response: %w", err)
	}

	if profile.Login == "" {
		return nil, fmt.Errorf("auth: GitHub returned an invalid user (empty login)")
	}

	profile.AccessToken = token.AccessToken
	return &profile, nil
}

// exchangeCode POSTs to GitHub's token endpoint. With "Accept:
// application/json" GitHub answers in JSON either way; a bad code yields
// the error fields rather than a non-2xx status.
func (p *Provider) exchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	form := url.Values{
		"client_id":     {p.config.ClientID},
		"client_secret": {p.config.ClientSecret},
		"code":          {code},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("auth: building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging OAuth code: %w", err)
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("auth: decoding token response: %w", err)
	}

	if tr.ErrorCode != "" || tr.AccessToken == "" {
		msg := tr.ErrorDescription
		if msg == "" {
			msg = tr.ErrorCode
		}
		if msg == "" {
			msg = fmt.Sprintf("token endpoint returned status %d with no access token", resp.StatusCode)
		}
		return nil, apperror.AuthFailed(msg)
	}

	return &oauth2.Token{AccessToken: tr.AccessToken}, nil
}
