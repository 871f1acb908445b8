package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysis(t *testing.T) {
	t.Run("fenced json", func(t *testing.T) {
		raw := "```json\n{\"jenjang\": \"Jenjang D - Pembaca Madya\", \"confidence_score\": 82, " +
			"\"alasan\": \"Paragraf argumentatif.\", \"saran\": \"Mandiri\", \"badge_color\": \" hijau \"}\n```"

		got, err := ParseAnalysis(raw)
		require.NoError(t, err)
		assert.Equal(t, "Jenjang D - Pembaca Madya", got.Jenjang)
		assert.Equal(t, 82.0, got.ConfidenceScore)
		assert.Equal(t, "Paragraf argumentatif.", got.Alasan)
		assert.Equal(t, "Mandiri", got.Saran)
		assert.Equal(t, "HIJAU", got.BadgeColor)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseAnalysis("```json\n```")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParseAnalysis("Jenjang A, saya cukup yakin.")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := ParseAnalysis(`{"jenjang": "Jenjang A", "confidence_score": 50, "alasan": "x", "saran": "y"}`)
		assert.ErrorIs(t, err, ErrInvalidResponse)
		assert.Contains(t, err.Error(), "badge_color")
	})

	t.Run("score out of range", func(t *testing.T) {
		_, err := ParseAnalysis(`{"jenjang": "Jenjang A", "confidence_score": 140, "alasan": "x", "saran": "y", "badge_color": "MERAH"}`)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}
