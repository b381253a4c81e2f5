package types

// Config represents the configuration for the refspan server
type Config struct {
	GoplsPath     string `json:"gopls_path,omitempty"`
	WorkspaceRoot string `json:"workspace_root"`
	HistoryPath   string `json:"history_path,omitempty"`
	LogLevel      string `json:"log_level,omitempty"`
}
