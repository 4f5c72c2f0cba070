package models

import "time"

// Article is a short text entry owned by the user that created it.
// CreatedBy is nullable for rows whose creator is unknown.
type Article struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"`
	CreatedBy   *int64    `db:"created_by" json:"created_by"`
	TimeCreated time.Time `db:"time_created" json:"time_created"`
}
