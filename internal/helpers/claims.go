package helpers

// EnhancedClaims is the identity handlers see once the Authenticator has run.
type EnhancedClaims struct {
	*CustomClaims
	UserID      string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	AccessToken string `json:"-"`
}

// Name is what the UI shows for the user: the display name when set, the
// email otherwise.
func (ec *EnhancedClaims) Name() string {
	if ec.DisplayName != "" {
		return ec.DisplayName
	}
	return ec.Email
}
