package models

// User is an authenticated account profile. Credentials live with the
// identity backend, never on this struct.
type User struct {
	UserID    string `json:"userid"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
