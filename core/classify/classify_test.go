package classify_test

import (
	"testing"

	"id-reconciler/core/classify"

	"github.com/stretchr/testify/assert"
)

func TestClassifyByPattern(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		namespace  classify.Namespace
		confidence classify.Confidence
	}{
		{"RefSeqWP", "WP_123456.1", classify.RefSeq, classify.High},
		{"RefSeqNP", "NP_000001", classify.RefSeq, classify.High},
		{"RefSeqXPLowercase", "xp_42.3", classify.RefSeq, classify.High},
		{"UniProtSixChar", "P12345", classify.UniProt, classify.High},
		{"UniProtOPQ", "Q9XYZ1", classify.UniProt, classify.High},
		{"UniProtTenChar", "A0A023GPI8", classify.UniProt, classify.High},
		{"UniProtVersioned", "P12345.2", classify.UniProt, classify.High},
		{"GenBankVersioned", "AAB12345.1", classify.GenBankOrEMBL, classify.Low},
		{"EMBLVersioned", "CAA28741.1", classify.GenBankOrEMBL, classify.Low},
		{"GenBankUnversioned", "AAB12345", classify.Unknown, classify.Low},
		{"TwoDots", "AAB12345.1.2", classify.Unknown, classify.Low},
		{"LocusTag", "SCO5087", classify.Unknown, classify.Low},
		{"Free", "foo123", classify.Unknown, classify.Low},
		{"Empty", "", classify.Unknown, classify.Low},
		{"Blank", "   ", classify.Unknown, classify.Low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, conf := classify.ClassifyByPattern(tt.id)
			assert.Equal(t, tt.namespace, ns)
			assert.Equal(t, tt.confidence, conf)
			assert.Equal(t, tt.confidence == classify.High, classify.IsConfident(conf))
		})
	}
}

func TestClassifyByPattern_Deterministic(t *testing.T) {
	for _, id := range []string{"WP_1", "P12345", "AAB12345.1", "foo"} {
		ns1, c1 := classify.ClassifyByPattern(id)
		ns2, c2 := classify.ClassifyByPattern(id)
		assert.Equal(t, ns1, ns2)
		assert.Equal(t, c1, c2)
	}
}

func TestNamespaceOfAccession(t *testing.T) {
	tests := []struct {
		name      string
		accession string
		hint      string
		want      classify.Namespace
	}{
		{"RefSeqPrefix", "WP_011111111.1", "", classify.RefSeq},
		{"RefSeqHint", "ABC00001.1", "refseq", classify.RefSeq},
		{"InsdHint", "AAB12345.1", "insd", classify.GenBank},
		{"EMBLHint", "CAA28741.1", "EMBL", classify.EMBL},
		{"GenBankHint", "AAB12345.1", "GenBank", classify.GenBank},
		{"SwissProt", "P12345", "UniProtKB reviewed (Swiss-Prot)", classify.UniProt},
		{"UniProtShape", "P12345", "", classify.UniProt},
		{"INSDCShapeNoHint", "AAB12345.1", "", classify.GenBank},
		{"Unrecognised", "12345", "", classify.Unknown},
		{"Empty", "", "refseq", classify.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.NamespaceOfAccession(tt.accession, tt.hint))
		})
	}
}

func TestParseNamespace(t *testing.T) {
	ns, ok := classify.ParseNamespace("refseq")
	assert.True(t, ok)
	assert.Equal(t, classify.RefSeq, ns)

	ns, ok = classify.ParseNamespace("GenBank_or_EMBL")
	assert.True(t, ok)
	assert.Equal(t, classify.GenBankOrEMBL, ns)

	ns, ok = classify.ParseNamespace("Other (NCBI)")
	assert.False(t, ok)
	assert.Equal(t, classify.Unknown, ns)
}
