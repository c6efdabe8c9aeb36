package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ParseTextRequest is the JSON body of POST /parse/text.
type ParseTextRequest struct {
	Text   string `json:"text" example:"EXPERIAN CREDIT REPORT\nPERSONAL INFORMATION\nName: JOHN A SMITH"`
	Bureau string `json:"bureau" example:"experian"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// DownloadURLResponse carries a presigned download URL.
type DownloadURLResponse struct {
	DownloadURL string `json:"download_url" example:"https://creditscan-reports.s3.amazonaws.com/reports/...?X-Amz-Signature=..."`
}

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
