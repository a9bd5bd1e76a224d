package entity

// Video is a stored video file. OriginalVideo and InferenceVideo are
// mutually exclusive: an original is the raw upload, an inference video is
// the worker-rendered counterpart tied 1:1 to an action.
type Video struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	PatientID      uint    `gorm:"index" json:"patient_id"`
	ActionID       *uint   `gorm:"index" json:"action_id"`
	OriginalVideo  bool    `json:"original_video"`
	InferenceVideo bool    `json:"inference_video"`
	VideoPath      string  `json:"video_path"`
	Notes          *string `json:"notes"`
	CreateTime     string  `json:"create_time"`
	UpdateTime     string  `json:"update_time"`
	IsDeleted      bool    `gorm:"default:false;index" json:"is_deleted,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
