package entity

// Role is a doctor role row; id 1 (admin) is seeded at startup.
type Role struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RoleName string `gorm:"unique" json:"role_name"`
	RoleDesc string `json:"role_desc"`
}

func (Role) TableName() string {
	return "roles"
}
