package user

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the minimal session identity: who is logged in, reachable where.
type User struct {
	ID        string
	Phone     string
	Role      Role
	CreatedAt time.Time
}

// TokenPair is what a successful verification hands back to the client.
// ExpiresAt is the access token expiry as unix milliseconds.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"`
}
