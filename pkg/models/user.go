package models

import "time"

type Address struct {
	ID      string `json:"id"`
	Label   string `json:"label" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// User is a customer account. Phone is the login key.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Addresses []Address `json:"addresses" validate:"dive"`
	Points    int       `json:"points"`
	Favorites []string  `json:"favorites"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Clone() User {
	out := u
	out.Addresses = append([]Address{}, u.Addresses...)
	out.Favorites = append([]string{}, u.Favorites...)
	return out
}

func CloneUsers(in []User) []User {
	out := make([]User, len(in))
	for i, u := range in {
		out[i] = u.Clone()
	}
	return out
}
