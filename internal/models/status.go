package models

// MatchStatus is the closed set of match lifecycle states.
type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchAIMatched MatchStatus = "ai_matched"
	MatchClaimed   MatchStatus = "claimed"
	MatchRejected  MatchStatus = "rejected"
	MatchCompleted MatchStatus = "completed"
)

// Unconfirmed reports whether the match is still awaiting an owner decision.
// Both pending and ai_matched matches can be claimed or rejected.
func (s MatchStatus) Unconfirmed() bool {
	return s == MatchPending || s == MatchAIMatched
}

// HandoverStatus tracks the physical return of the item, independent of
// the claim/reject decision on the match itself.
type HandoverStatus string

const (
	HandoverPending           HandoverStatus = "pending"
	HandoverSubmittedByFinder HandoverStatus = "submitted_by_finder"
	HandoverReceivedByOwner   HandoverStatus = "received_by_owner"
)

// ReportStatus applies to both lost and found reports.
type ReportStatus string

const (
	ReportPending ReportStatus = "pending"
	ReportClaimed ReportStatus = "claimed"
)

// Audience selects who a notification is addressed to.
type Audience string

const (
	AudienceUser  Audience = "user"
	AudienceAdmin Audience = "admin"
)
