package entity

// Role IDs; the admin role is seeded at startup.
const (
	RoleAdmin  uint = 1
	RoleDoctor uint = 2
)

// Doctor represents a clinician account. Passwords are bcrypt hashes and
// never leave the server.
type Doctor struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Username   string  `gorm:"index" json:"username"`
	Password   string  `json:"-"`
	Email      string  `gorm:"index" json:"email"`
	Phone      *string `json:"phone"`
	Department *string `gorm:"default:'康复科'" json:"department"`
	RoleID     *uint   `gorm:"index" json:"role_id"`
	Notes      *string `json:"notes"`
	CreateTime string  `json:"create_time"`
	UpdateTime string  `json:"update_time"`
	IsDeleted  bool    `gorm:"default:false;index" json:"is_deleted,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsAdmin reports whether the doctor holds the admin role.
func (d *Doctor) IsAdmin() bool {
	return d.RoleID != nil && *d.RoleID == RoleAdmin
}
