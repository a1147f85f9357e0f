package normalize_test

import (
	"testing"

	"id-reconciler/core/normalize"

	"github.com/stretchr/testify/assert"
)

func TestAccession(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Versioned", "BGC0000001.1", "BGC0000001"},
		{"OtherVersion", "BGC0000001.2", "BGC0000001"},
		{"NoVersion", "BGC0000001", "BGC0000001"},
		{"FastaHeader", "BGC0000042.1|1|1-1083|+|ABC12345.1", "BGC0000042"},
		{"HeaderWithoutVersion", "BGC0000042|cds", "BGC0000042"},
		{"Whitespace", "  BGC0000007.3\t", "BGC0000007"},
		{"Empty", "", ""},
		{"Blank", "   ", ""},
		{"OnlyVersion", ".1", ""},
		{"OnlyPipe", "|BGC1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Accession(tt.in))
		})
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"RefSeq", "WP_123456.1", "WP_123456"},
		{"GenBank", "AAB12345.2", "AAB12345"},
		{"LocusTag", "SCO5087", "SCO5087"},
		{"PipeIsKept", "sp|P12345", "sp|P12345"},
		{"Whitespace", " CAA12345.1 ", "CAA12345"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Identifier(tt.in))
		})
	}
}

func TestNormalization_Idempotent(t *testing.T) {
	inputs := []string{
		"BGC0000001.1", "BGC0000001", "BGC1.2|x|y", " a.b.c ", "|", ".", "", "WP_1.1",
		"foo123", " .1", "x |y", "ä.ö",
	}

	for _, in := range inputs {
		acc := normalize.Accession(in)
		assert.Equal(t, acc, normalize.Accession(acc), "accession %q", in)

		id := normalize.Identifier(in)
		assert.Equal(t, id, normalize.Identifier(id), "identifier %q", in)
	}
}

func TestNormalization_VersionEquivalence(t *testing.T) {
	assert.Equal(t, normalize.Accession("BGC0000001.1"), normalize.Accession("BGC0000001.2"))
	assert.Equal(t, "BGC0000001", normalize.Accession("BGC0000001.2"))
	assert.Equal(t, normalize.Identifier("WP_1.1"), normalize.Identifier("WP_1.9"))
}
