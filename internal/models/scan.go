package models

type Scan struct {
	UUID        string `gorm:"primaryKey;type:varchar(36)" json:"uuid"`
	TargetsFile string `json:"targets_file"`
	ConfigName  string `json:"config_name"`
	OutputDir   string `json:"output_dir"`
	Status      string `json:"status"`
	TargetCount int    `json:"target_count"`
	RecordCount int    `json:"record_count"`
	FailedCount int    `json:"failed_count"`
	ReportPath  string `json:"report_path"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}
