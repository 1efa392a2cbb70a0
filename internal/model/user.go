// Package model defines the data structures used throughout the application.
package model

// User represents an account backed by a GitHub identity.
//
// We use GitHub OAuth as the only identity provider, so the primary key is
// the GitHub login itself — there is no separate internal ID. The login is
// stable and unique on GitHub's side, and every photo references its owner
// by this value (Photo.UserID).
//
// WHY STORE GithubToken?
// The GitHub access token doubles as the session credential: githubAuth
// returns it to the client, and subsequent requests present it as a bearer
// token. The auth middleware resolves it back to this record with a
// githubToken lookup. No separate session store is needed.
//
// The bson tags match the document field names in the "users" collection.
// There is at most one document per githubLogin; every successful login
// replaces the whole document (see repository.UserRepository.Upsert).
type User struct {
	GithubLogin string `bson:"githubLogin" json:"githubLogin"`
	Name        string `bson:"name"        json:"name"`
	Avatar      string `bson:"avatar"      json:"avatar"`
	GithubToken string `bson:"githubToken" json:"-"` // session credential, never sent except via githubAuth
}
