package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleOfficer    Role = "officer"
	RoleSupervisor Role = "supervisor"
)

// Rank 是自由文本的警衔字段，由外部的人事档案系统维护，
// 这里只引用，不拥有
type Rank string

// 常见的警衔，仅供 seed 和前端下拉框使用，并不是封闭枚举
const (
	RankPoliceOfficer      Rank = "Police Officer"
	RankProbationaryPolice Rank = "Probationary Police Officer"
	RankCorporal           Rank = "Corporal"
	RankSergeant           Rank = "Sergeant"
)

// IsProbationary 判断该警衔是否为试用期警员（PPO）
// 由于警衔字段是自由文本，这里采用宽松匹配：
// 包含 probationary / probation 子串，或者存在等于 ppo 的单词
func (rk Rank) IsProbationary() bool {
	lower := strings.ToLower(string(rk))

	if strings.Contains(lower, "probationary") || strings.Contains(lower, "probation") {
		return true
	}

	for _, token := range strings.Fields(lower) {
		if token == "ppo" {
			return true
		}
	}

	return false
}

type Officer struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Rank         Rank      `json:"rank"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
