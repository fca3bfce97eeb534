package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const MimeOctetStream = "application/octet-stream"

var (
	AllowedPlanExtensions = []string{".pdf", ".doc", ".docx", ".odt", ".md"}
)
