package models

// CredentialRequest submits an API key for validation.
type CredentialRequest struct {
	APIKey string `json:"apiKey"`

	// Save persists the key for the next start when validation succeeds.
	Save bool `json:"save"`
}

// CredentialState reports whether the feature screens are reachable.
type CredentialState struct {
	Unlocked bool `json:"unlocked"`
}
