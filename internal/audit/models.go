package audit

import "time"

// Event records one vetting determination. Sanctions and revocation calls
// are legally sensitive, so every determination is captured with enough
// context to reproduce it: the exact inputs, the recommendation, and the
// request that produced it. Keep it transport-agnostic so stores and sinks
// can fan out.
type Event struct {
	Timestamp      time.Time `json:"timestamp"`
	RequestID      string    `json:"requestId"`
	OrgName        string    `json:"orgName"`
	EIN            string    `json:"ein,omitempty"`
	Recommendation string    `json:"recommendation"`
	FlagCount      int       `json:"flagCount"`
	SourcesChecked int       `json:"sourcesChecked"`
}
