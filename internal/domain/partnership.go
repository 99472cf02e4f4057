package domain

type PartnershipIssueKind string

const (
	// 两名试用期警员不允许互为唯一搭档
	IssuePPOPPOPairing PartnershipIssueKind = "PPO_PPO_PAIRING"
	// 搭档关系只剩单边，对方不在当天的排班结果中，或者没有回指
	IssueUnmatchedPartner PartnershipIssueKind = "UNMATCHED_PARTNER"
)

// PartnershipIssue 是搭档校验的告警值，不是错误，
// 由调用方决定是阻止写入还是仅提示
type PartnershipIssue struct {
	Kind             PartnershipIssueKind `json:"kind"`
	OfficerID        int64                `json:"officerID"`
	PartnerOfficerID int64                `json:"partnerOfficerID"`
	Message          string               `json:"message"`
}
