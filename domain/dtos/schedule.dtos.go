package dtos

type UpdateDownloadUrlRequest struct {
	Url string `json:"url" form:"url" validate:"required,url,startswith=http"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
