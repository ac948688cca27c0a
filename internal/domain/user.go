// Package domain contains entity without logic, just meta-data
package domain

// UserID is the campus identifier a student reserves under
// (the numeric DLSU id, carried as a string on the wire).
type UserID string

type User struct {
	DlsuID        int64  `json:"dlsuID"`
	Username      string `json:"username"`
	FirstName     string `json:"firstName"`
	MiddleInitial string `json:"middleInitial"`
	LastName      string `json:"lastName"`
	Course        string `json:"course"`
	About         string `json:"about"`
	Email         string `json:"email"`
	ImageSource   string `json:"imageSource"`
	Contact       string `json:"contact"`
}
