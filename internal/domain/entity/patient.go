package entity

// Patient owns videos and actions. CaseID doubles as the patient's login
// credential and must be unique among non-deleted rows; the usecase layer
// enforces that so a soft-deleted patient's case id can be reissued.
type Patient struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Username   string  `gorm:"index" json:"username"`
	Age        *int    `json:"age"`
	Gender     *string `json:"gender"`
	CaseID     string  `gorm:"index" json:"case_id"`
	DoctorID   *uint   `gorm:"index" json:"doctor_id"`
	Notes      *string `json:"notes"`
	CreateTime string  `json:"create_time"`
	UpdateTime string  `json:"update_time"`
	IsDeleted  bool    `gorm:"default:false;index" json:"is_deleted,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
