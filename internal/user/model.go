package user

import (
	"time"
)

// User is the stored user record. ID is assigned by the store.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string `json:"-"` // Never expose password hash in JSON
	City         string
	Skills       []string
	Experience   int
	Portfolio    string
	ProfilePic   string
	CreatedAt    time.Time
}

// Profile is the external representation of a User: no password hash and
// the store identifier exposed as "id".
type Profile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	City       string    `json:"city"`
	Skills     []string  `json:"skills"`
	Experience int       `json:"experience"`
	Portfolio  string    `json:"portfolio"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToProfile converts a stored record to its external shape
func (u *User) ToProfile() Profile {
	skills := make([]string, len(u.Skills))
	copy(skills, u.Skills)

	return Profile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		City:       u.City,
		Skills:     skills,
		Experience: u.Experience,
		Portfolio:  u.Portfolio,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
	}
}

// ToProfiles converts every record. The result is never nil so it encodes
// as an empty JSON array.
func ToProfiles(users []User) []Profile {
	profiles := make([]Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}
	return profiles
}
