package users

import (
	"math/rand/v2"
	"time"
)

const (
	DefaultRank   = "Initiate"
	DefaultStatus = "Active"
)

// User is a member identity record. The Password field holds the bcrypt
// digest and is persisted to the collection file but stripped from every
// response via Public.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Codename  string    `json:"codename"`
	Rank      string    `json:"rank"`
	GoatLevel int       `json:"goatLevel"`
	Rizz      int       `json:"rizz"`
	Status    string    `json:"status"`
	IsAdmin   bool      `json:"isAdmin"`
	JoinDate  time.Time `json:"joinDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Public returns a copy of the user with the password digest stripped.
func (u User) Public() User {
	u.Password = ""
	return u
}

// PublicAll strips the password digest from every user in the list.
func PublicAll(records []User) []User {
	public := make([]User, len(records))
	for i, u := range records {
		public[i] = u.Public()
	}
	return public
}

// NewRecruit builds the user record synthesized when an unknown email logs
// in for the first time: a generated Agent codename, Initiate rank and
// random stats in [25,75).
func NewRecruit(id int, email, passwordDigest string) User {
	now := time.Now().UTC()
	return User{
		ID:        id,
		Email:     email,
		Password:  passwordDigest,
		Codename:  "Agent-" + randomCallsign(6),
		Rank:      DefaultRank,
		GoatLevel: rand.IntN(50) + 25,
		Rizz:      rand.IntN(50) + 25,
		Status:    DefaultStatus,
		IsAdmin:   false,
		JoinDate:  now,
		CreatedAt: now,
	}
}

const callsignAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCallsign(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = callsignAlphabet[rand.IntN(len(callsignAlphabet))]
	}
	return string(b)
}
