package maptool

import (
	"fmt"

	"github.com/distribution/reference"
	"github.com/opencontainers/go-digest"

	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
)

// ImagePin identifies the exact map generator build. The digest is kept as
// written so that consumers can compare it byte for byte.
type ImagePin struct {
	Image  string
	Digest string

	named  reference.Named
	digest digest.Digest
}

func NewImagePin(image string, dgst string) (*ImagePin, error) {
	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return nil, fmt.Errorf("invalid maptool image %q: %w", image, err)
	}

	d, err := digest.Parse(dgst)
	if err != nil {
		return nil, fmt.Errorf("invalid maptool image digest %q: %w", dgst, err)
	}

	return &ImagePin{
		Image:  image,
		Digest: dgst,
		named:  named,
		digest: d,
	}, nil
}

func NewImagePinFromOptions(options setup.MaptoolOptions) (*ImagePin, error) {
	return NewImagePin(options.Image, options.ImageDigest)
}

// Canonical returns the image reference pinned to its digest, e.g.
// registry/repo:tag@sha256:...
func (p *ImagePin) Canonical() (string, error) {
	canonical, err := reference.WithDigest(p.named, p.digest)
	if err != nil {
		return "", fmt.Errorf("failed to pin image: %w", err)
	}
	return reference.FamiliarString(canonical), nil
}

func (p *ImagePin) Algorithm() string {
	return p.digest.Algorithm().String()
}
