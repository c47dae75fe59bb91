package constants

import "strings"

// AllowedExtensions holds the default allowed file extensions for scanned
// newspaper page ingestion.
var AllowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"tif":  {},
	"tiff": {},
}

// MaxScanMB caps the scan size attached to an extraction request.
const MaxScanMB = 20

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
