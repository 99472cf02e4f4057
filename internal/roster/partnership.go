package roster

import (
	"fmt"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

// ValidatePartnerships 校验合并结果中的搭档配对，入参应当是 ResolveFull
// 的输出，这样请假的搭档才不会被误报为缺失
//
// 校验只产生告警值，不修改任何状态，由调用方决定阻止写入还是仅提示
func (e *Engine) ValidatePartnerships(assignments []domain.EffectiveAssignment) ([]domain.PartnershipIssue, error) {
	officerIDs := make([]int64, 0, len(assignments))
	seen := make(map[int64]bool)

	collect := func(id int64) {
		if !seen[id] {
			seen[id] = true
			officerIDs = append(officerIDs, id)
		}
	}

	for _, ea := range assignments {
		collect(ea.OfficerID)
		if ea.PartnerOfficerID != nil {
			collect(*ea.PartnerOfficerID)
		}
	}

	if len(officerIDs) == 0 {
		return []domain.PartnershipIssue{}, nil
	}

	officers, err := e.store.GetOfficersByIDs(officerIDs)
	if err != nil {
		return nil, &StoreFailure{Op: "GetOfficersByIDs", Err: err}
	}

	ranks := make(map[int64]domain.Rank, len(officers))
	for _, o := range officers {
		ranks[o.ID] = o.Rank
	}

	return CheckPartnerships(assignments, ranks), nil
}

// CheckPartnerships 是纯函数形式的搭档校验核心
func CheckPartnerships(assignments []domain.EffectiveAssignment, ranks map[int64]domain.Rank) []domain.PartnershipIssue {
	byOfficer := make(map[int64]*domain.EffectiveAssignment, len(assignments))
	for i := range assignments {
		byOfficer[assignments[i].OfficerID] = &assignments[i]
	}

	issues := []domain.PartnershipIssue{}

	for i := range assignments {
		ea := &assignments[i]
		if !ea.IsPartnership || ea.PartnerOfficerID == nil {
			continue
		}

		// 本方请假或者搭档关系被暂停时配对不生效，不需要校验
		if ea.IsOff || ea.PartnershipSuspended {
			continue
		}

		partnerID := *ea.PartnerOfficerID

		partner, exists := byOfficer[partnerID]
		if !exists {
			issues = append(issues, domain.PartnershipIssue{
				Kind:             domain.IssueUnmatchedPartner,
				OfficerID:        ea.OfficerID,
				PartnerOfficerID: partnerID,
				Message:          fmt.Sprintf("警员 %d 的搭档 %d 不在当天的排班结果中", ea.OfficerID, partnerID),
			})
			continue
		}

		// 对方请假或者暂停，配对当天不生效
		if partner.IsOff || partner.PartnershipSuspended {
			continue
		}

		// 搭档关系必须对称：对方必须回指本方
		if partner.PartnerOfficerID == nil || *partner.PartnerOfficerID != ea.OfficerID {
			issues = append(issues, domain.PartnershipIssue{
				Kind:             domain.IssueUnmatchedPartner,
				OfficerID:        ea.OfficerID,
				PartnerOfficerID: partnerID,
				Message:          fmt.Sprintf("警员 %d 指向搭档 %d，但对方没有回指", ea.OfficerID, partnerID),
			})
			continue
		}

		// 两名试用期警员不允许互为唯一搭档，每对只报一次
		if ea.OfficerID < partnerID && ranks[ea.OfficerID].IsProbationary() && ranks[partnerID].IsProbationary() {
			issues = append(issues, domain.PartnershipIssue{
				Kind:             domain.IssuePPOPPOPairing,
				OfficerID:        ea.OfficerID,
				PartnerOfficerID: partnerID,
				Message:          fmt.Sprintf("警员 %d 和 %d 都是试用期警员，不允许互为搭档", ea.OfficerID, partnerID),
			})
		}
	}

	return issues
}
