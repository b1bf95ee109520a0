package model

type AnalyzeRequestBody struct {
	Notes Notes `json:"notes"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
