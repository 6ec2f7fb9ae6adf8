package domain

import "time"

// PreUser is an invite record created ahead of onboarding.
// Once IsUsed is set, UsedBy never changes.
type PreUser struct {
	ID        string     `json:"id"`
	Nickname  string     `json:"nickname"`
	Token     string     `json:"token"`
	IsUsed    bool       `json:"is_used"`
	UsedBy    *string    `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Invite is a freshly issued invite and its shareable link.
type Invite struct {
	PreUser *PreUser `json:"pre_user"`
	Link    string   `json:"link"`
}

// InviteResolution is the side-effect free outcome of resolving a token.
type InviteResolution struct {
	State        string  `json:"state"`
	PreUserID    string  `json:"pre_user_id"`
	NicknameHint string  `json:"nickname_hint"`
	IsUsed       bool    `json:"is_used"`
	UsedBy       *string `json:"used_by,omitempty"`
}

// LoginResult is returned by every path that ends in an authenticated session.
type LoginResult struct {
	State     string    `json:"state"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Profile   *Profile  `json:"profile"`
	Created   bool      `json:"created"`
}

// Credential stores the hashed secret backing a login.
type Credential struct {
	UserID     string    `json:"user_id"`
	SecretHash []byte    `json:"-"`
	UpdatedAt  time.Time `json:"updated_at"`
}
