package models

import "time"

// Parent defines the parent role profile based on the 'parents' table.
type Parent struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
	Name   string `json:"name" db:"name"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

// ParentStudentLink is one edge of the parent-student relationship graph.
// The (parent, student) pair is unique; edges are created only by an
// explicit parent-initiated link and are never removed.
type ParentStudentLink struct {
	ID        int64     `json:"id" db:"id"`
	ParentID  int64     `json:"parentId" db:"parent_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
