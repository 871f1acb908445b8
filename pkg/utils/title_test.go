package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "laskar pelangi", NormalizeTitle("  Laskar   PELANGI\t"))
	assert.Equal(t, "", NormalizeTitle("   "))
}

func TestHashTitleIgnoresCaseAndSpacing(t *testing.T) {
	assert.Equal(t, HashTitle("Bumi Manusia"), HashTitle(" bumi  manusia "))
	assert.NotEqual(t, HashTitle("Bumi Manusia"), HashTitle("Anak Semua Bangsa"))
	assert.Len(t, HashTitle("x"), 64)
}
