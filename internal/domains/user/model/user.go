package model

import "time"

const Collection = "users"

// User is the stored shape. Only the bcrypt hash of the password is kept.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Gender       string    `json:"gender"`
	PhoneNumber  string    `json:"phone_number"`
	Age          int       `json:"age"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserResponse never carries the password or its hash.
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Gender       string    `json:"gender"`
	PhoneNumber  string    `json:"phone_number"`
	Age          int       `json:"age"`
	TotalReviews int       `json:"total_reviews"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) ToResponse(totalReviews int) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Gender:       u.Gender,
		PhoneNumber:  u.PhoneNumber,
		Age:          u.Age,
		TotalReviews: totalReviews,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
