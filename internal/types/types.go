package types

// Category is the coarse content classification assigned to a file from its
// extension alone.
type Category string

const (
	CatSource  Category = "source"
	CatBinary  Category = "binary"
	CatArchive Category = "archive"
	CatOther   Category = "other"
)

// Project associates a file with an upstream project it was sourced from.
type Project struct {
	Name     string `json:"name"`
	Homepage string `json:"homepage,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// FileMetadata is the attribution record applied uniformly to every file
// collected in a run. The collector attaches it verbatim; it never varies
// per file.
type FileMetadata struct {
	License          string    `json:"license,omitempty"`
	ConcludedLicense string    `json:"concluded_license,omitempty"`
	LicenseComment   string    `json:"license_comment,omitempty"`
	Copyright        string    `json:"copyright,omitempty"`
	Notice           string    `json:"notice,omitempty"`
	Comment          string    `json:"comment,omitempty"`
	Contributors     []string  `json:"contributors,omitempty"`
	Projects         []Project `json:"projects,omitempty"`
}

// FileIdentity records one collected file: its tree-relative path, content
// category, content checksum (lowercase hex) and the run's shared metadata.
type FileIdentity struct {
	Path     string       `json:"path"`
	Category Category     `json:"category"`
	Checksum string       `json:"checksum"`
	Metadata FileMetadata `json:"metadata"`
}

// VerificationCode is the aggregate checksum over a set of per-file
// checksums, plus the paths deliberately left out of the aggregate. Two
// manifests with the same code describe the same effective file set.
type VerificationCode struct {
	Value         string   `json:"value"`
	ExcludedPaths []string `json:"excluded_paths,omitempty"`
}
