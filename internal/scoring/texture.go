package scoring

import "github.com/velvetcrown/wigmatch-backend/pkg/enums"

// textureAffinity is keyed (userTexture, candidateTexture) and is
// intentionally asymmetric: a straight-haired user tolerates wavy wigs better
// than a wavy-haired user tolerates pin-straight ones. Exact matches always
// score 1.0.
var textureAffinity = map[enums.HairTexture]map[enums.HairTexture]float64{
	enums.HairTextureStraight: {
		enums.HairTextureStraight: 1.0,
		enums.HairTextureWavy:     0.70,
		enums.HairTextureCurly:    0.35,
		enums.HairTextureKinky:    0.20,
		enums.HairTextureCoily:    0.15,
		enums.HairTextureMixed:    0.50,
	},
	enums.HairTextureWavy: {
		enums.HairTextureStraight: 0.60,
		enums.HairTextureWavy:     1.0,
		enums.HairTextureCurly:    0.70,
		enums.HairTextureKinky:    0.30,
		enums.HairTextureCoily:    0.25,
		enums.HairTextureMixed:    0.60,
	},
	enums.HairTextureCurly: {
		enums.HairTextureStraight: 0.30,
		enums.HairTextureWavy:     0.65,
		enums.HairTextureCurly:    1.0,
		enums.HairTextureKinky:    0.60,
		enums.HairTextureCoily:    0.55,
		enums.HairTextureMixed:    0.60,
	},
	enums.HairTextureKinky: {
		enums.HairTextureStraight: 0.15,
		enums.HairTextureWavy:     0.30,
		enums.HairTextureCurly:    0.60,
		enums.HairTextureKinky:    1.0,
		enums.HairTextureCoily:    0.80,
		enums.HairTextureMixed:    0.50,
	},
	enums.HairTextureCoily: {
		enums.HairTextureStraight: 0.10,
		enums.HairTextureWavy:     0.25,
		enums.HairTextureCurly:    0.55,
		enums.HairTextureKinky:    0.85,
		enums.HairTextureCoily:    1.0,
		enums.HairTextureMixed:    0.50,
	},
	enums.HairTextureMixed: {
		enums.HairTextureStraight: 0.50,
		enums.HairTextureWavy:     0.60,
		enums.HairTextureCurly:    0.60,
		enums.HairTextureKinky:    0.50,
		enums.HairTextureCoily:    0.50,
		enums.HairTextureMixed:    1.0,
	},
}

func textureScore(user, candidate enums.HairTexture) float64 {
	if user == candidate {
		return 1.0
	}
	row, ok := textureAffinity[user]
	if !ok {
		return 0.5
	}
	score, ok := row[candidate]
	if !ok {
		return 0.5
	}
	return score
}
