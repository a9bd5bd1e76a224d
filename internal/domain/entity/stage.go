package entity

// Stage is one ordinal phase of a walking trial within an action.
type Stage struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ActionID   uint   `gorm:"index" json:"action_id"`
	StageN     int    `json:"stage_n"`
	StartFrame int    `json:"start_frame"`
	EndFrame   int    `json:"end_frame"`
	CreateTime string `json:"create_time"`
	UpdateTime string `json:"update_time"`
	IsDeleted  bool   `gorm:"default:false;index" json:"is_deleted,omitempty"`
}

func (Stage) TableName() string {
	return "stages"
}
