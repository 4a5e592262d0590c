// Package database persists login sessions.
package database

import (
	"context"
	"errors"
	"time"

	"git.tdpain.net/codemicro/newsPortal/cmd/portald/internal/config"
	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/portalapi"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one logged-in browser.
type Session struct {
	ID           string    `db:"id" bson:"_id"`
	AccessToken  string    `db:"access_token" bson:"access_token"`
	RefreshToken string    `db:"refresh_token" bson:"refresh_token"`
	UserID       int       `db:"user_id" bson:"user_id"`
	FullName     string    `db:"full_name" bson:"full_name"`
	Email        string    `db:"email" bson:"email"`
	Username     string    `db:"username" bson:"username"`
	CreatedAt    time.Time `db:"created_at" bson:"created_at"`
}

func NewSession(tokens *portalapi.TokenPair, user *models.User) *Session {
	return &Session{
		ID:           uuid.NewString(),
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
		UserID:       user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		Username:     user.Username,
		CreatedAt:    time.Now().UTC(),
	}
}

func (s *Session) User() *models.User {
	return &models.User{
		ID:       s.UserID,
		FullName: s.FullName,
		Email:    s.Email,
		Username: s.Username,
	}
}

type DB interface {
	InsertSession(ctx context.Context, session *Session) error
	// GetSession returns ErrSessionNotFound for unknown ids.
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
	Close() error
}

// New opens the session store named by conf: MongoDB when a DSN is set,
// SQLite otherwise.
func New(conf *config.Config) (DB, error) {
	if conf.UseMongo() {
		return NewMongoDB(conf.MongoDSN, conf.MongoDatabase)
	}
	return NewSQLiteDB(conf.DatabaseFilename)
}
