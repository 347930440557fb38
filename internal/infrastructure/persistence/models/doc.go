// Package models holds the GORM rows of the local preference store. They
// stay out of the domain package so identity types carry no ORM tags.
package models
