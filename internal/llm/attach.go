package llm

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/pressarchive/newspaper-ocr/constants"
)

// ScanDataURL reads the page scan and encodes it as a base64 data URL for a
// vision request. Rejects unsupported extensions and oversized files before
// reading anything.
func ScanDataURL(path string) (dataURL, mimeType string, err error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return "", "", fmt.Errorf("unsupported scan extension %q", ext)
	}

	st, err := os.Stat(path)
	if err != nil {
		return "", "", err
	}
	if st.Size() > int64(constants.MaxScanMB)*1024*1024 {
		return "", "", fmt.Errorf("scan %s exceeds %dMB", path, constants.MaxScanMB)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	mt := mime.TypeByExtension("." + ext)
	if mt == "" {
		switch ext {
		case "jpg", "jpeg":
			mt = "image/jpeg"
		case "png":
			mt = "image/png"
		case "tif", "tiff":
			mt = "image/tiff"
		default:
			mt = "application/octet-stream"
		}
	}
	data := base64.StdEncoding.EncodeToString(b)
	return "data:" + mt + ";base64," + data, mt, nil
}
