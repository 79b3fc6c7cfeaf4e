package models

// UserIdentity is the authenticated user as published by the server. The
// password never appears here; the server strips it before responding.
// Replaced wholesale on every profile fetch or update.
type UserIdentity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ProfilePatch carries the mutable profile fields. Everything else on
// UserIdentity (email, role, createdAt) is owned by the server and cannot be
// changed through a profile update.
type ProfilePatch struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}
