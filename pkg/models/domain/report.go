package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidReportType   = errors.New("invalid report type")
	ErrInvalidReportStatus = errors.New("invalid report status")
	ErrDraftNotFound       = errors.New("no saved draft")
)

type ReportType string

const (
	ReportTypeUnset ReportType = ""
	ReportTypeCSR   ReportType = "CSR"
	ReportTypeESG   ReportType = "ESG"
)

func ParseReportType(s string) (ReportType, error) {
	switch t := ReportType(s); t {
	case ReportTypeUnset, ReportTypeCSR, ReportTypeESG:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReportType, s)
	}
}

type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusSubmitted ReportStatus = "submitted"
	ReportStatusApproved  ReportStatus = "approved"
)

func ParseReportStatus(s string) (ReportStatus, error) {
	switch st := ReportStatus(s); st {
	case "", ReportStatusDraft, ReportStatusSubmitted, ReportStatusApproved:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReportStatus, s)
	}
}

// Report is a persisted sustainability report.
type Report struct {
	ID             string
	Title          string
	Type           ReportType
	Frameworks     []string
	Description    string
	KPIs           KPITree
	Analysis       string
	Status         ReportStatus
	SubmissionDate string // YYYY-MM-DD
	Version        int
	Documents      map[string][]byte
}

func (r Report) Clone() Report {
	out := r
	out.Frameworks = append([]string(nil), r.Frameworks...)
	out.KPIs = r.KPIs.Clone()
	if r.Documents != nil {
		out.Documents = make(map[string][]byte, len(r.Documents))
		for name, blob := range r.Documents {
			out.Documents[name] = append([]byte(nil), blob...)
		}
	}
	return out
}

// Draft is the in-progress report edited through the wizard.
type Draft struct {
	Title       string
	Type        ReportType
	Frameworks  []string
	Description string
	KPIs        KPITree
	Analysis    string
	Version     int
}

func NewDraft() Draft {
	return Draft{Version: 1}
}

func (d Draft) Clone() Draft {
	out := d
	out.Frameworks = append([]string(nil), d.Frameworks...)
	out.KPIs = d.KPIs.Clone()
	return out
}

// ToReport builds a report body without an identifier.
func (d Draft) ToReport(status ReportStatus, submissionDate string) Report {
	c := d.Clone()
	return Report{
		Title:          c.Title,
		Type:           c.Type,
		Frameworks:     c.Frameworks,
		Description:    c.Description,
		KPIs:           c.KPIs,
		Analysis:       c.Analysis,
		Status:         status,
		SubmissionDate: submissionDate,
		Version:        c.Version,
	}
}
