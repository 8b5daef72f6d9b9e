package handlers

type ScanRequest struct {
	TargetsFile string `json:"targets_file" binding:"required"`
	ConfigName  string `json:"config_name"`
	OutputDir   string `json:"output_dir"`
}

type ScanResponse struct {
	ScanID string `json:"scan_id"`
}

type ReportRequest struct {
	InputFolder string   `json:"input_folder" binding:"required"`
	LogFormat   string   `json:"log_format"`
	Fields      []string `json:"fields" binding:"required"`
	OutputFile  string   `json:"output_file" binding:"required"`
}

type ReportResponse struct {
	Records    int    `json:"records"`
	OutputFile string `json:"output_file"`
}
