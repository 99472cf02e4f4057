package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

func TestRankIsProbationary(t *testing.T) {
	tests := []struct {
		rank string
		want bool
	}{
		{"Probationary Police Officer", true},
		{"probationary officer", true},
		{"Officer (Probation)", true},
		{"PPO", true},
		{"ppo", true},
		{"Field Training PPO", true},
		{"Police Officer", false},
		{"Corporal", false},
		{"Sergeant", false},
		// "ppo" 必须是独立的词，不能作为子串误判
		{"Support Officer", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.rank, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Rank(tt.rank).IsProbationary(), "rank %q", tt.rank)
		})
	}
}
