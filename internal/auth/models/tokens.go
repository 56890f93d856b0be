package models

// TokenPair carries the two opaque session tokens issued together. Both map
// to the same owner at issuance; they expire independently in the cache.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	OwnerID      string `json:"-"`
}
