package schema

import "time"

type User struct {
	ID          string    `json:"id"`
	Email       *string   `json:"email"`
	Name        *string   `json:"name"`
	Phone       *string   `json:"phone"`
	Role        Role      `json:"role"`
	IsActive    bool      `json:"isActive"`
	Services    []string  `json:"services"`
	LoginID     *string   `json:"loginId"`
	DateOfBirth *string   `json:"dateOfBirth"`
	GroupID     *string   `json:"groupId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProfileCount struct {
	Documents    int `json:"documents"`
	Appointments int `json:"appointments"`
}

// UserProfile is returned by GET /user/profile.
type UserProfile struct {
	User
	Count                ProfileCount `json:"_count"`
	UpcomingAppointments int          `json:"upcomingAppointments"`
}

// UserInput creates or patches a user; nil fields are left unchanged on patch.
type UserInput struct {
	Email       *string  `json:"email,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Password    *string  `json:"password,omitempty"`
	Role        *Role    `json:"role,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
	Services    []string `json:"services,omitempty"`
	LoginID     *string  `json:"loginId,omitempty"`
	DateOfBirth *string  `json:"dateOfBirth,omitempty"`
	GroupID     *string  `json:"groupId,omitempty"`
}
