// Package catalog holds the known container images and their short aliases.
package catalog

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
)

const (
	// DefaultImage is used when neither flags nor config name an image.
	DefaultImage = "alpine:latest"

	// AliasPrefix marks an image value as a catalog name or tag, e.g. "@python".
	AliasPrefix = "@"
)

// Image is a known image. Name and every tag resolve to URL.
type Image struct {
	Name string
	URL  string
	Tags []string
}

// NewImage builds an Image from a comma-separated tag list.
func NewImage(name, url, tags string) Image {
	img := Image{Name: name, URL: url}
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			img.Tags = append(img.Tags, tag)
		}
	}
	return img
}

// Catalog is an ordered list of known images.
type Catalog struct {
	images []Image
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{images: []Image{
		NewImage("rust", "docker.io/library/rust:alpine", "rust,cargo,rustup"),
		NewImage("bun", "docker.io/oven/bun:alpine", "bun,js,ts,bunsh,typescript"),
		NewImage("uv", "ghcr.io/astral-sh/uv:alpine", "uv,python,python3,pip"),
	}}
}

// Add appends images after validating their URLs. Nothing is added when any image is
// invalid. Later entries never shadow earlier ones during lookup.
func (c *Catalog) Add(images ...Image) error {
	for _, img := range images {
		if img.Name == "" {
			return fmt.Errorf("catalog image with URL %q has no name", img.URL)
		}
		if err := ValidateReference(img.URL); err != nil {
			return fmt.Errorf("catalog image %q: %w", img.Name, err)
		}
	}
	c.images = append(c.images, images...)
	return nil
}

// Images returns the catalog entries in order.
func (c *Catalog) Images() []Image {
	return append([]Image(nil), c.images...)
}

// Lookup finds the image whose name or tag equals alias.
func (c *Catalog) Lookup(alias string) (Image, bool) {
	for _, img := range c.images {
		if img.Name == alias {
			return img, true
		}
	}
	for _, img := range c.images {
		for _, tag := range img.Tags {
			if tag == alias {
				return img, true
			}
		}
	}
	return Image{}, false
}

// Resolve maps an "@alias" to the catalog URL. Any other value is an image reference and
// is returned unchanged once it parses, so real image names are never rewritten.
func (c *Catalog) Resolve(image string) (string, error) {
	if alias, ok := strings.CutPrefix(image, AliasPrefix); ok {
		img, found := c.Lookup(alias)
		if !found {
			return "", fmt.Errorf("unknown image alias %q", alias)
		}
		return img.URL, nil
	}
	if err := ValidateReference(image); err != nil {
		return "", err
	}
	return image, nil
}

// ValidateReference checks that image is a well-formed image reference.
func ValidateReference(image string) error {
	if _, err := reference.ParseNormalizedNamed(image); err != nil {
		return fmt.Errorf("invalid image reference %q: %w", image, err)
	}
	return nil
}
