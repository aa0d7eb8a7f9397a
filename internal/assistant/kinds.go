package assistant

import (
	"fmt"

	"bizkb/internal/domain"
)

// CopyType is the closed set of marketing-copy formats.
type CopyType string

const (
	CopyEmail         CopyType = "email"
	CopySocial        CopyType = "social"
	CopyLandingPage   CopyType = "landing_page"
	CopyAdvertisement CopyType = "advertisement"
)

// ParseCopyType validates a copy type supplied on the command line.
func ParseCopyType(s string) (CopyType, error) {
	switch CopyType(s) {
	case CopyEmail, CopySocial, CopyLandingPage, CopyAdvertisement:
		return CopyType(s), nil
	}
	return "", fmt.Errorf("%w: unknown copy type %q", domain.ErrInvalidInput, s)
}

// AnalysisType is the closed set of document-analysis variants.
type AnalysisType string

const (
	AnalysisExecutiveSummary AnalysisType = "executive_summary"
	AnalysisActionItems      AnalysisType = "action_items"
	AnalysisFinancial        AnalysisType = "financial"
	AnalysisStrategic        AnalysisType = "strategic"
	AnalysisComprehensive    AnalysisType = "comprehensive"
)

// ParseAnalysisType validates an analysis type supplied on the command line.
func ParseAnalysisType(s string) (AnalysisType, error) {
	switch AnalysisType(s) {
	case AnalysisExecutiveSummary, AnalysisActionItems, AnalysisFinancial,
		AnalysisStrategic, AnalysisComprehensive:
		return AnalysisType(s), nil
	}
	return "", fmt.Errorf("%w: unknown analysis type %q", domain.ErrInvalidInput, s)
}

// ReportType is the closed set of business-report variants.
type ReportType string

const (
	ReportSales           ReportType = "sales"
	ReportMarketing       ReportType = "marketing"
	ReportCustomerSuccess ReportType = "customer_success"
	ReportFinancial       ReportType = "financial"
	ReportOperational     ReportType = "operational"
)

// ParseReportType validates a report type supplied on the command line.
func ParseReportType(s string) (ReportType, error) {
	switch ReportType(s) {
	case ReportSales, ReportMarketing, ReportCustomerSuccess,
		ReportFinancial, ReportOperational:
		return ReportType(s), nil
	}
	return "", fmt.Errorf("%w: unknown report type %q", domain.ErrInvalidInput, s)
}

// IntelFocus is the closed set of competitive-intelligence angles.
type IntelFocus string

const (
	IntelNews        IntelFocus = "news"
	IntelFeatures    IntelFocus = "features"
	IntelPositioning IntelFocus = "positioning"
)

// ParseIntelFocus validates an intelligence focus supplied on the command line.
func ParseIntelFocus(s string) (IntelFocus, error) {
	switch IntelFocus(s) {
	case IntelNews, IntelFeatures, IntelPositioning:
		return IntelFocus(s), nil
	}
	return "", fmt.Errorf("%w: unknown intelligence focus %q", domain.ErrInvalidInput, s)
}
