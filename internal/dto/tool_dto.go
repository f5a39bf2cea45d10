package dto

type CreateToolRequest struct {
	Name    string `json:"name" validate:"required"`
	Prompt  string `json:"prompt" validate:"required"`
	LogoURL string `json:"logo_url"`
}

type ToolResponse struct {
	Id              int    `json:"id"`
	Name            string `json:"name"`
	Prompt          string `json:"prompt,omitempty"`
	LogoURL         string `json:"logo_url,omitempty"`
	IsCustom        bool   `json:"is_custom"`
	IsAddToolMarker bool   `json:"is_add_tool_marker"`
	TrainingDocs    int    `json:"training_docs"`
}
