package models

import "time"

// Note is a text document owned by exactly one user. Accessors holds user ids
// granted read access via sharing; only the owner may write. A note is
// visible to a caller iff the caller is the owner or appears in Accessors.
type Note struct {
	ID        string
	Owner     string
	Accessors []string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
