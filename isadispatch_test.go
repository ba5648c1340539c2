package bsonjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectVariantIsScalarOrWide(t *testing.T) {
	v := detectVariant()
	assert.Contains(t, []isaVariant{variantScalar, variantWide}, v)
}

func TestSelectedVariantMatchesDetection(t *testing.T) {
	assert.Equal(t, detectVariant(), selectedVariant)
}
