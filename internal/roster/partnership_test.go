package roster_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
	"github.com/blueline-dev/patrol-roster/backend/internal/roster"
)

func partneredAssignment(officerID int64, partnerID int64) domain.EffectiveAssignment {
	return domain.EffectiveAssignment{
		OfficerID:        officerID,
		Date:             time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		ShiftTypeID:      dayShiftID,
		IsPartnership:    true,
		PartnerOfficerID: int64Ptr(partnerID),
		Source:           domain.SourceRecurring,
	}
}

func addOfficer(store *fakeStore, id int64, rank domain.Rank) {
	store.officers[id] = &domain.Officer{
		ID:   id,
		Rank: rank,
		Role: domain.RoleOfficer,
	}
}

func TestValidatePartnershipsActivePair(t *testing.T) {
	store := newResolverStore()
	addOfficer(store, 1, domain.RankPoliceOfficer)
	addOfficer(store, 2, domain.RankCorporal)

	engine := roster.NewEngine(store, nil)

	issues, err := engine.ValidatePartnerships([]domain.EffectiveAssignment{
		partneredAssignment(1, 2),
		partneredAssignment(2, 1),
	})
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidatePartnershipsMissingPartner(t *testing.T) {
	store := newResolverStore()
	addOfficer(store, 1, domain.RankPoliceOfficer)

	engine := roster.NewEngine(store, nil)

	issues, err := engine.ValidatePartnerships([]domain.EffectiveAssignment{
		partneredAssignment(1, 2),
	})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueUnmatchedPartner, issues[0].Kind)
	assert.Equal(t, int64(1), issues[0].OfficerID)
	assert.Equal(t, int64(2), issues[0].PartnerOfficerID)
}

func TestValidatePartnershipsNoBackReference(t *testing.T) {
	store := newResolverStore()
	addOfficer(store, 1, domain.RankPoliceOfficer)
	addOfficer(store, 2, domain.RankPoliceOfficer)
	addOfficer(store, 3, domain.RankPoliceOfficer)

	engine := roster.NewEngine(store, nil)

	// 1 指向 2，但 2 指向 3
	issues, err := engine.ValidatePartnerships([]domain.EffectiveAssignment{
		partneredAssignment(1, 2),
		partneredAssignment(2, 3),
		partneredAssignment(3, 2),
	})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueUnmatchedPartner, issues[0].Kind)
	assert.Equal(t, int64(1), issues[0].OfficerID)
}

func TestValidatePartnershipsPPOPair(t *testing.T) {
	store := newResolverStore()
	addOfficer(store, 1, domain.RankProbationaryPolice)
	addOfficer(store, 2, domain.Rank("PPO"))

	engine := roster.NewEngine(store, nil)

	issues, err := engine.ValidatePartnerships([]domain.EffectiveAssignment{
		partneredAssignment(1, 2),
		partneredAssignment(2, 1),
	})
	require.NoError(t, err)

	// 配对双向都会被遍历，但每对只报一次
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssuePPOPPOPairing, issues[0].Kind)
	assert.Equal(t, int64(1), issues[0].OfficerID)
	assert.Equal(t, int64(2), issues[0].PartnerOfficerID)
}

func TestValidatePartnershipsSuspendedPairInactive(t *testing.T) {
	store := newResolverStore()
	addOfficer(store, 1, domain.RankProbationaryPolice)
	addOfficer(store, 2, domain.RankProbationaryPolice)

	a := partneredAssignment(1, 2)
	a.PartnershipSuspended = true
	b := partneredAssignment(2, 1)
	b.PartnershipSuspended = true

	engine := roster.NewEngine(store, nil)

	issues, err := engine.ValidatePartnerships([]domain.EffectiveAssignment{a, b})
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidatePartnershipsPartnerOnLeave(t *testing.T) {
	store := newResolverStore()
	addOfficer(store, 1, domain.RankPoliceOfficer)
	addOfficer(store, 2, domain.RankPoliceOfficer)

	onLeave := partneredAssignment(2, 1)
	onLeave.IsOff = true
	onLeave.Source = domain.SourceException
	onLeave.Kind = domain.OverrideRemoval

	engine := roster.NewEngine(store, nil)

	// 搭档请假不算缺失，配对当天不生效
	issues, err := engine.ValidatePartnerships([]domain.EffectiveAssignment{
		partneredAssignment(1, 2),
		onLeave,
	})
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidatePartnershipsNonPartneredIgnored(t *testing.T) {
	store := newResolverStore()
	addOfficer(store, 1, domain.RankPoliceOfficer)

	solo := domain.EffectiveAssignment{
		OfficerID:   1,
		ShiftTypeID: dayShiftID,
		Source:      domain.SourceRecurring,
	}

	engine := roster.NewEngine(store, nil)

	issues, err := engine.ValidatePartnerships([]domain.EffectiveAssignment{solo})
	require.NoError(t, err)
	assert.Empty(t, issues)
}
