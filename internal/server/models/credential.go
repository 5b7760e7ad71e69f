package models

import "time"

// Credential is the stored form of one identity's password: the salt and the
// encoded digest (see passhash). Cost duplicates the memory exponent carried
// inside Digest so it can be queried without decoding.
type Credential struct {
	ID        string    `json:"id,omitempty"`
	Identity  string    `json:"identity"`
	Salt      []byte    `json:"salt"`
	Digest    []byte    `json:"digest"`
	Cost      int16     `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
