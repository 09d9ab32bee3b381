package cloudinarydomain

// ResourceType é o tipo de recurso do Cloudinary usado na rota de upload
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceRaw   ResourceType = "raw"
)

// UploadParams descreve um upload não assinado (upload preset)
type UploadParams struct {
	ResourceType ResourceType
	FileName     string
	Data         []byte
	PublicID     string
}

// UploadResponse traz apenas os campos da resposta que o catálogo usa
type UploadResponse struct {
	PublicID     string `json:"public_id"`
	SecureURL    string `json:"secure_url"`
	URL          string `json:"url"`
	ResourceType string `json:"resource_type"`
	Bytes        int64  `json:"bytes"`
	Version      int64  `json:"version"`
}
