package enums

import "fmt"

// HairTexture represents the canonical texture values for hair and wig fibers.
type HairTexture string

const (
	HairTextureStraight HairTexture = "straight"
	HairTextureWavy     HairTexture = "wavy"
	HairTextureCurly    HairTexture = "curly"
	HairTextureKinky    HairTexture = "kinky"
	HairTextureCoily    HairTexture = "coily"
	HairTextureMixed    HairTexture = "mixed"
)

var validHairTextures = []HairTexture{
	HairTextureStraight,
	HairTextureWavy,
	HairTextureCurly,
	HairTextureKinky,
	HairTextureCoily,
	HairTextureMixed,
}

// String implements fmt.Stringer.
func (t HairTexture) String() string {
	return string(t)
}

// IsValid reports whether the value is a known HairTexture.
func (t HairTexture) IsValid() bool {
	for _, candidate := range validHairTextures {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseHairTexture converts raw input into a HairTexture.
func ParseHairTexture(value string) (HairTexture, error) {
	for _, candidate := range validHairTextures {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid hair texture %q", value)
}
