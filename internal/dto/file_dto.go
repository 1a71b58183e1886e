package dto

type UploadedFileResponse struct {
	Id       string `json:"id"`
	Filename string `json:"filename"`
	Bytes    int64  `json:"bytes"`
}

type UploadFilesResponse struct {
	Files []UploadedFileResponse `json:"files"`
}

type ListFilesResponse struct {
	Files []UploadedFileResponse `json:"files"`
}

// FileIngestedMessage is published once an uploaded file finishes indexing.
type FileIngestedMessage struct {
	FileId        string `json:"file_id"`
	VectorStoreId string `json:"vector_store_id"`
	Filename      string `json:"filename"`
}
