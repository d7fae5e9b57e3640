package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the Postgres row for a user record
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	City         string    `bun:"city,notnull"`
	Skills       []string  `bun:"skills,array,notnull"`
	Experience   int       `bun:"experience,notnull"`
	Portfolio    string    `bun:"portfolio,notnull"`
	ProfilePic   string    `bun:"profile_pic,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
}

// UserDocument is the MongoDB document for a user record
type UserDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"passwordHash"`
	City         string        `bson:"city"`
	Skills       []string      `bson:"skills"`
	Experience   int           `bson:"experience"`
	Portfolio    string        `bson:"portfolio"`
	ProfilePic   string        `bson:"profilePic"`
	CreatedAt    time.Time     `bson:"createdAt"`
}
