package authn

// LoginInput for GET /api/auth/{provider}/login.
type LoginInput struct {
	Provider string `path:"provider" doc:"Identity provider" enum:"google,microsoft,linkedin"`
}

// CallbackInput for GET /api/auth/{provider}/callback.
type CallbackInput struct {
	Provider         string `path:"provider"           doc:"Identity provider" enum:"google,microsoft,linkedin"`
	Code             string `query:"code"              doc:"Authorization code"`
	State            string `query:"state"             doc:"Signed state issued at login"`
	Error            string `query:"error"             doc:"Provider error code"`
	ErrorDescription string `query:"error_description" doc:"Provider error description"`
}

// MeInput for GET /api/auth/me (no parameters).
type MeInput struct{}

// ProvidersInput for GET /api/auth/providers (no parameters).
type ProvidersInput struct{}
