package utils

import (
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var ranks = []domain.Rank{
	domain.RankPoliceOfficer,
	domain.RankProbationaryPolice,
	domain.RankCorporal,
	domain.RankSergeant,
}

func GenerateRandomRank() domain.Rank {
	return ranks[rand.Intn(len(ranks))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomOfficer(password string, emailDomainName string) (*domain.Officer, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	officer := &domain.Officer{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Rank:         GenerateRandomRank(),
		Role:         domain.RoleOfficer,
	}

	return officer, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// 常见的巡逻岗位和辖区，仅供 seed 使用
var positions = []string{"Patrol", "Desk", "Traffic", "K9", "Dispatch"}
var units = []string{"1A", "1B", "2A", "2B", "3A"}

func GenerateRandomPosition() string {
	return positions[rand.Intn(len(positions))]
}

func GenerateRandomUnit() string {
	return units[rand.Intn(len(units))]
}

var ptoTypes = []string{"vacation", "sick", "personal", "comp"}

func PTOTypes() []string {
	return ptoTypes
}

func GenerateRandomPTOType() string {
	return ptoTypes[rand.Intn(len(ptoTypes))]
}

// 跨夜班次无法表达，夜班按凌晨段建模
func GenerateRandomShiftTypes() []*domain.ShiftType {
	return []*domain.ShiftType{
		{Name: "Day", StartTime: "07:00:00", EndTime: "15:00:00"},
		{Name: "Evening", StartTime: "15:00:00", EndTime: "23:00:00"},
		{Name: "Night", StartTime: "00:00:00", EndTime: "07:00:00"},
	}
}
