// Package auth runs the OAuth sign-in flow for the desktop shell: the
// authorization URL opens in the system browser and the provider redirects
// back to a loopback callback.
package auth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Provider identifies an OAuth identity provider
type Provider string

const (
	GitHub Provider = "github"
	Google Provider = "google"
)

// DisplayName returns the label used on sign-in buttons
func (p Provider) DisplayName() string {
	switch p {
	case GitHub:
		return "GitHub"
	case Google:
		return "Google"
	}
	return string(p)
}

// ProviderConfig is the client registration at one provider
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	Scopes       []string
	Endpoint     oauth2.Endpoint
	UserInfoURL  string
}

// DefaultProviderConfig returns the endpoints and scopes of a known provider
func DefaultProviderConfig(p Provider, clientID, clientSecret string) (ProviderConfig, bool) {
	switch p {
	case GitHub:
		return ProviderConfig{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     endpoints.GitHub,
			UserInfoURL:  "https://api.github.com/user",
		}, true
	case Google:
		return ProviderConfig{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoints.Google,
			UserInfoURL:  "https://openidconnect.googleapis.com/v1/userinfo",
		}, true
	}
	return ProviderConfig{}, false
}

func (pc ProviderConfig) oauth2(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     pc.ClientID,
		ClientSecret: pc.ClientSecret,
		Endpoint:     pc.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       pc.Scopes,
	}
}
