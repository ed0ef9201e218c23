package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	BaseModel
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	Phone        string `db:"phone" json:"phone,omitempty"`
	Address      string `db:"address" json:"address,omitempty"`
	City         string `db:"city" json:"city,omitempty"`
	State        string `db:"state" json:"state,omitempty"`
	Pincode      string `db:"pincode" json:"pincode,omitempty"`
	Country      string `db:"country" json:"country,omitempty"`
	ProfileImage string `db:"profile_image" json:"profileImage,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
