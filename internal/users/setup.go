package users

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/CovertCollective/CC-Backend/internal/credentials"
	"github.com/CovertCollective/CC-Backend/internal/store"
)

// Bootstrap creates the initial administrator when the user store is empty.
// The email and password come from deployment configuration; when no
// password is configured a random one is generated and logged once so the
// operator can capture it.
func Bootstrap(users *store.Collection[User], email, password string) error {
	return users.Update(func(records []User) ([]User, error) {
		if len(records) > 0 {
			return records, nil
		}

		generated := false
		if password == "" {
			password = uuid.NewString()
			generated = true
		}

		digest, err := credentials.Hash(password)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		admin := User{
			ID:        1,
			Email:     email,
			Password:  digest,
			Codename:  "The Founder",
			Rank:      "The Almighty",
			GoatLevel: 100,
			Rizz:      100,
			Status:    DefaultStatus,
			IsAdmin:   true,
			JoinDate:  now,
			CreatedAt: now,
		}

		if generated {
			log.Printf("[users] bootstrap admin %s created with generated password: %s", email, password)
		} else {
			log.Printf("[users] bootstrap admin %s created", email)
		}

		return append(records, admin), nil
	})
}
