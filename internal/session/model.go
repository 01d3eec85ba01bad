package session

// User is the cached profile of the authenticated user. It is fetched from
// the platform after login or hydration and is never persisted; its presence
// must not be read as an authentication signal.
type User struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	IsActive       bool    `json:"is_active"`
	IsAdmin        bool    `json:"is_admin"`
	VirtualBalance string  `json:"virtual_balance"`
	FundsOnHold    string  `json:"funds_on_hold"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      *string `json:"updated_at"`
}

// Credentials is the persisted projection of the session: exactly the two
// bearer tokens, nothing else. An empty string means "absent".
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Snapshot is a read-only copy of the in-memory session state.
type Snapshot struct {
	AccessToken     string
	RefreshToken    string
	IsAuthenticated bool
	User            *User
	Hydrated        bool
}
