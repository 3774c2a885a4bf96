package libs

import (
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

// ImageResolver turns catalog image references into delivery URLs.
type ImageResolver interface {
	Resolve(ref string) string
}

// PassthroughImages leaves references as they are.
type PassthroughImages struct{}

func (PassthroughImages) Resolve(ref string) string { return ref }

type CloudinaryImages struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryImages(cloudName, apiKey, apiSecret string) (*CloudinaryImages, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryImages{cld: cld}, nil
}

// Resolve maps a public id to its delivery URL. Absolute URLs and empty refs
// pass through, as does anything the SDK refuses to build.
func (c *CloudinaryImages) Resolve(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	asset, err := c.cld.Image(ref)
	if err != nil {
		return ref
	}
	url, err := asset.String()
	if err != nil {
		return ref
	}
	return url
}
