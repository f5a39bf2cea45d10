package dto

type ExportPdfRequest struct {
	Content  string `json:"content" validate:"required"`
	Title    string `json:"title"`
	Filename string `json:"filename"`
}
