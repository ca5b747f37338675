// Package litigation is the federal-litigation search collaborator: a thin
// rate-limited HTTP client over a CourtListener-style docket API, with an
// optional cached layer in front. The dataset store and matchers never call
// it; the vetting orchestrator composes it alongside them.
package litigation

// Case is one federal docket naming the organization.
type Case struct {
	CaseName     string `json:"caseName"`
	Court        string `json:"court"`
	DateFiled    string `json:"dateFiled"`
	DocketNumber string `json:"docketNumber"`
}

// Result summarizes a docket search. CaseCount drives flag severity
// downstream; Cases carries at most a page of detail for the report.
type Result struct {
	Found     bool   `json:"found"`
	Detail    string `json:"detail"`
	CaseCount int    `json:"caseCount"`
	Cases     []Case `json:"cases,omitempty"`
}
