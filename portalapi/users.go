package portalapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/transport"
	"github.com/golang-jwt/jwt/v5"
)

// TokenPair is what user/token/ hands out on a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (c *Client) ObtainToken(ctx context.Context, inputs *transport.LoginInputs) (*TokenPair, error) {
	pair := new(TokenPair)
	if err := c.post(ctx, "user/token", "user/token/", inputs, pair); err != nil {
		return nil, err
	}
	if pair.Access == "" {
		return nil, errors.New("token response did not contain an access token")
	}
	return pair, nil
}

func (c *Client) Register(ctx context.Context, inputs *transport.RegisterInputs) error {
	return c.post(ctx, "user/register", "user/register/", inputs, nil)
}

func (c *Client) Profile(ctx context.Context, userID int) (*models.Profile, error) {
	profile := new(models.Profile)
	if err := c.get(ctx, "user/profile", "user/profile/"+strconv.Itoa(userID)+"/", nil, profile); err != nil {
		return nil, err
	}
	profile.Normalize()
	return profile, nil
}

// Bookmarks returns everything userID has bookmarked.
func (c *Client) Bookmarks(ctx context.Context, userID int) (*models.Bookmarks, error) {
	bookmarks, err := getFirst[*models.Bookmarks](ctx, c, "all-bookmarks", "all-bookmarks/"+strconv.Itoa(userID)+"/")
	if err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = new(models.Bookmarks)
	}
	bookmarks.Normalize()
	return bookmarks, nil
}

// numericClaim accepts a claim encoded either as a JSON number or a string.
type numericClaim int

func (n *numericClaim) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		num = json.Number(s)
	}
	v, err := num.Int64()
	if err != nil {
		return fmt.Errorf("numeric claim: %w", err)
	}
	*n = numericClaim(v)
	return nil
}

type accessClaims struct {
	UserID   numericClaim `json:"user_id"`
	FullName string       `json:"full_name"`
	Email    string       `json:"email"`
	Username string       `json:"username"`
	jwt.RegisteredClaims
}

// UserFromToken reads the user identity out of an access token's claims.
// The signature is not checked: the token came straight from the API and is
// only ever sent back to it.
func UserFromToken(access string) (*models.User, error) {
	claims := new(accessClaims)
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	if claims.UserID == 0 {
		return nil, errors.New("access token has no user_id claim")
	}
	return &models.User{
		ID:       int(claims.UserID),
		FullName: claims.FullName,
		Email:    claims.Email,
		Username: claims.Username,
	}, nil
}
