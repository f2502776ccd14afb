package dto

type ShareRequest struct {
	Share *bool `json:"share" binding:"required"`
}

type ShareStatusResponse struct {
	Hash    *string `json:"hash"`
	Message string  `json:"message,omitempty"`
}

type SharedBrainResponse struct {
	Username string            `json:"username"`
	Bio      string            `json:"bio"`
	Content  []ContentResponse `json:"content"`
}
