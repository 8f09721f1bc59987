package models

import (
	"github.com/shopspring/decimal"
)

// CorrectionStatus labels whether a flagged operation has been corrected.
type CorrectionStatus string

const (
	Corrected   CorrectionStatus = "CORREGIDO"
	Uncorrected CorrectionStatus = "SIN CORREGIR"
)

// ReviewAreaData is the review state of one operation in one review area.
type ReviewAreaData struct {
	Status           string            `json:"status"`
	CorrectionStatus *CorrectionStatus `json:"correctionStatus"`
	CorrectionDate   *string           `json:"correctionDate"`
}

// ReviewData tracks the three independent review areas of an operation:
// documentary support, central-bank (Banrep) report, and customs authority
// (DIAN) legalization. Comments is the sync target for cross-document
// annotations propagated through the link graph.
type ReviewData struct {
	Documental ReviewAreaData `json:"documental"`
	Banrep     ReviewAreaData `json:"banrep"`
	Dian       ReviewAreaData `json:"dian"`
	Comments   string         `json:"comments"`
}

// Operation is one granular amount inside a movement that must reconcile
// against exactly one external record.
type Operation struct {
	ID              string          `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	IncludeInReview bool            `json:"includeInReview"`
	ReviewData      ReviewData      `json:"reviewData"`
}

// LinkType discriminates SmartLink targets.
type LinkType string

const (
	LinkTypeXML LinkType = "xml"
	LinkTypePDF LinkType = "pdf"
)

// SmartLink is a directed, deduplicated association from a movement to an
// XML line (type=xml) or to a declaration file (type=pdf). Within one
// movement's link set no two xml links share the same (file, line) pair and
// no two pdf links share the same file name.
type SmartLink struct {
	Type           LinkType `json:"type"`
	Label          string   `json:"label"`
	TargetFileID   string   `json:"targetFileId,omitempty"`
	TargetLineID   string   `json:"targetLineId,omitempty"`
	TargetFileName string   `json:"targetFileName"`
}

// Movement is one ledger entry from a bank statement.
type Movement struct {
	ID                 string          `json:"id"`
	Date               string          `json:"date"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	SourceFile         string          `json:"sourceFile"`
	Operations         []Operation     `json:"operations"`
	LinkedDeclarations []SmartLink     `json:"linkedDeclarations,omitempty"`
	LinkedXMLs         []SmartLink     `json:"linkedXmls,omitempty"`
}

// HasXMLLink reports whether the movement already links the given line.
func (m *Movement) HasXMLLink(fileID, lineID string) bool {
	for _, l := range m.LinkedXMLs {
		if l.TargetFileID == fileID && l.TargetLineID == lineID {
			return true
		}
	}
	return false
}

// HasDeclarationLink reports whether the movement already links the file name.
func (m *Movement) HasDeclarationLink(fileName string) bool {
	for _, l := range m.LinkedDeclarations {
		if l.TargetFileName == fileName {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the movement, its operations and links.
func (m Movement) Clone() Movement {
	ops := make([]Operation, len(m.Operations))
	for i, op := range m.Operations {
		if op.ReviewData.Documental.CorrectionStatus != nil {
			cs := *op.ReviewData.Documental.CorrectionStatus
			op.ReviewData.Documental.CorrectionStatus = &cs
		}
		if op.ReviewData.Documental.CorrectionDate != nil {
			cd := *op.ReviewData.Documental.CorrectionDate
			op.ReviewData.Documental.CorrectionDate = &cd
		}
		if op.ReviewData.Banrep.CorrectionStatus != nil {
			cs := *op.ReviewData.Banrep.CorrectionStatus
			op.ReviewData.Banrep.CorrectionStatus = &cs
		}
		if op.ReviewData.Banrep.CorrectionDate != nil {
			cd := *op.ReviewData.Banrep.CorrectionDate
			op.ReviewData.Banrep.CorrectionDate = &cd
		}
		if op.ReviewData.Dian.CorrectionStatus != nil {
			cs := *op.ReviewData.Dian.CorrectionStatus
			op.ReviewData.Dian.CorrectionStatus = &cs
		}
		if op.ReviewData.Dian.CorrectionDate != nil {
			cd := *op.ReviewData.Dian.CorrectionDate
			op.ReviewData.Dian.CorrectionDate = &cd
		}
		ops[i] = op
	}
	m.Operations = ops
	m.LinkedDeclarations = append([]SmartLink(nil), m.LinkedDeclarations...)
	m.LinkedXMLs = append([]SmartLink(nil), m.LinkedXMLs...)
	return m
}
