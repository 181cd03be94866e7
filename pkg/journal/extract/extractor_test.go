package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmptyMessage(t *testing.T) {
	ctx := Extract("")

	assert.Equal(t, "", ctx.Message)
	assert.Equal(t, 0, ctx.EntryLength)
	assert.Empty(t, ctx.Tags)
	assert.False(t, ctx.Features.SymbolicLanguage)
	assert.Zero(t, ctx.Features.AbstractDensity)
	assert.Zero(t, ctx.Features.NumbnessMentions)
}

func TestExtractEntryLengthCountsRunes(t *testing.T) {
	// 11 runes, more bytes than that because of the accents.
	ctx := Extract("árvíztűrő ű")
	assert.Equal(t, 11, ctx.EntryLength)
}

func TestExtractSymbolicLanguage(t *testing.T) {
	assert.True(t, Extract("Mintha ködben járnék").Features.SymbolicLanguage)
	assert.True(t, Extract("ÜRESSÉG van bennem").Features.SymbolicLanguage)
	assert.False(t, Extract("Ma bevásároltam").Features.SymbolicLanguage)
}

func TestExtractAbstractDensity(t *testing.T) {
	ctx := Extract("A létezés és az idő, meg a belső határ")
	assert.Equal(t, 4, ctx.Features.AbstractDensity)

	assert.Zero(t, Extract("Semmi különös nem történt").Features.AbstractDensity)
}

func TestExtractNumbnessMentions(t *testing.T) {
	// "nem érzek semmit" contains "nem érzek" too, both phrases count.
	ctx := Extract("Zsibbadt vagyok, nem érzek semmit")
	assert.Equal(t, 3, ctx.Features.NumbnessMentions)
}

func TestExtractEmotionTags(t *testing.T) {
	tests := []struct {
		message string
		want    []string
	}{
		{"Nagyon egyedül vagyok ma", []string{"loneliness"}},
		{"Szomorú vagyok és fájdalom van bennem", []string{"sadness"}},
		{"Nem tudom mit érzek, csak zavar van", []string{"confusion"}},
		{"Fázom és minden hideg", []string{"numbness"}},
		{"Egyedül vagyok és szomorú", []string{"loneliness", "sadness"}},
		{"Remek napom volt", nil},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.message).Tags)
		})
	}
}
