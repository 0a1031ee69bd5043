// Package models defines the persistent domain records of the service.
package models

// User is a student or admin account created through signup.
// Password holds whatever the configured password scheme produced;
// with the plain scheme it is the submitted value verbatim.
type User struct {
	ID          int
	Name        string
	RollNo      string
	Email       string
	PhoneNumber string
	Department  string
	Year        string
	Password    string
	Role        string
}
