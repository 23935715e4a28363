package request

// ExportProfileRequest represents profile export query parameters
type ExportProfileRequest struct {
	Resolved bool `form:"resolved"`
}
