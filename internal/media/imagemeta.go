package media

import (
	"bytes"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// probeDimensions decodes just enough of the payload to learn the pixel size.
// SVG has no intrinsic pixel dimensions and unknown formats are tolerated, so
// a nil pair is a valid answer.
func probeDimensions(contentType string, data []byte) (*int, *int) {
	if strings.EqualFold(contentType, "image/svg+xml") {
		return nil, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}
	width, height := cfg.Width, cfg.Height
	return &width, &height
}
