package identity

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/linkedin"
	"golang.org/x/oauth2/microsoft"
)

// Provider names.
const (
	Google    = "google"
	Microsoft = "microsoft"
	LinkedIn  = "linkedin"
)

// Provider is one OAuth identity provider with an OpenID user-info endpoint.
type Provider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
}

// Credentials are a provider's client registration.
type Credentials struct {
	ClientID     string
	ClientSecret string
	// Tenant applies to Microsoft only; empty means "common".
	Tenant string
}

var openIDScopes = []string{"openid", "profile", "email"}

func callbackURL(redirectBase, name string) string {
	return redirectBase + "/api/auth/" + name + "/callback"
}

// NewGoogle configures Google sign-in.
func NewGoogle(c Credentials, redirectBase string) *Provider {
	return &Provider{
		Name: Google,
		Config: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  callbackURL(redirectBase, Google),
			Scopes:       openIDScopes,
		},
		UserInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
	}
}

// NewMicrosoft configures Microsoft Entra ID sign-in.
func NewMicrosoft(c Credentials, redirectBase string) *Provider {
	tenant := c.Tenant
	if tenant == "" {
		tenant = "common"
	}
	return &Provider{
		Name: Microsoft,
		Config: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Endpoint:     microsoft.AzureADEndpoint(tenant),
			RedirectURL:  callbackURL(redirectBase, Microsoft),
			Scopes:       append([]string{"User.Read"}, openIDScopes...),
		},
		UserInfoURL: "https://graph.microsoft.com/oidc/userinfo",
	}
}

// NewLinkedIn configures LinkedIn sign-in.
func NewLinkedIn(c Credentials, redirectBase string) *Provider {
	return &Provider{
		Name: LinkedIn,
		Config: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Endpoint:     linkedin.Endpoint,
			RedirectURL:  callbackURL(redirectBase, LinkedIn),
			Scopes:       openIDScopes,
		},
		UserInfoURL: "https://api.linkedin.com/v2/userinfo",
	}
}
