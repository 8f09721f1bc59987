package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovement_HasLinks(t *testing.T) {
	m := Movement{
		LinkedXMLs: []SmartLink{
			{Type: LinkTypeXML, TargetFileID: "f1", TargetLineID: "l1"},
		},
		LinkedDeclarations: []SmartLink{
			{Type: LinkTypePDF, TargetFileName: "decl.pdf"},
		},
	}

	assert.True(t, m.HasXMLLink("f1", "l1"))
	assert.False(t, m.HasXMLLink("f1", "l2"))
	assert.True(t, m.HasDeclarationLink("decl.pdf"))
	assert.False(t, m.HasDeclarationLink("other.pdf"))
}

func TestMovement_Clone(t *testing.T) {
	date := "2024-05-01"
	status := Corrected
	m := Movement{
		ID:     "mov-1",
		Amount: decimal.RequireFromString("-10"),
		Operations: []Operation{
			{
				ID: "op-1",
				ReviewData: ReviewData{
					Documental: ReviewAreaData{Status: "aprobado", CorrectionStatus: &status, CorrectionDate: &date},
					Comments:   "original",
				},
			},
		},
		LinkedXMLs: []SmartLink{{Type: LinkTypeXML, TargetLineID: "l1"}},
	}

	c := m.Clone()
	c.Operations[0].ReviewData.Comments = "changed"
	*c.Operations[0].ReviewData.Documental.CorrectionStatus = Uncorrected
	c.LinkedXMLs[0].TargetLineID = "l2"

	assert.Equal(t, "original", m.Operations[0].ReviewData.Comments)
	assert.Equal(t, Corrected, *m.Operations[0].ReviewData.Documental.CorrectionStatus)
	assert.Equal(t, "l1", m.LinkedXMLs[0].TargetLineID)
}

func TestLineFile_LineIndex(t *testing.T) {
	f := LineFile{
		Lines: []Line{{ID: "a"}, {ID: "b"}},
	}
	assert.Equal(t, 1, f.LineIndex("b"))
	assert.Equal(t, -1, f.LineIndex("missing"))
}

func TestAuditFileRegistry_Buckets(t *testing.T) {
	var r AuditFileRegistry

	for _, cat := range Categories {
		require.NotNil(t, r.Bucket(cat), string(cat))
	}
	assert.Nil(t, r.Bucket("nope"))

	bucket := r.Bucket(CategoryXMLs)
	*bucket = append(*bucket, AuditFile{ID: "x1", Metadata: FileMetadata{Name: "a.xml"}})

	f, ok := r.FindByName(CategoryXMLs, "a.xml")
	require.True(t, ok)
	assert.Equal(t, "x1", f.ID)

	_, ok = r.FindByName(CategoryBanrep, "a.xml")
	assert.False(t, ok)

	assert.True(t, r.Remove(CategoryXMLs, "x1"))
	assert.False(t, r.Remove(CategoryXMLs, "x1"))
}
