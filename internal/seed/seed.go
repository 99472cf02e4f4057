package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/config"
	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
	"github.com/blueline-dev/patrol-roster/backend/internal/repository"
	"github.com/blueline-dev/patrol-roster/backend/internal/roster"
	"github.com/blueline-dev/patrol-roster/backend/internal/utils"
)

const (
	officerCount      = 24
	partnershipCount  = 6
	exceptionCount    = 10
	initialLeaveHours = 80
)

type exceptionSlot struct {
	officerID   int64
	shiftTypeID int64
	date        time.Time
}

// uniqueExceptionSlots 随机挑选最多 n 个互不重复的 (警员, 日期, 班次) 组合，
// 日期落在 [from, from+days) 内
func uniqueExceptionSlots(officerIDs []int64, shiftTypeIDs []int64, from time.Time, days int, n int) []exceptionSlot {
	used := make(map[string]bool)
	slots := make([]exceptionSlot, 0, n)

	for attempts := 0; len(slots) < n && attempts < n*20; attempts++ {
		slot := exceptionSlot{
			officerID:   officerIDs[rand.Intn(len(officerIDs))],
			shiftTypeID: shiftTypeIDs[rand.Intn(len(shiftTypeIDs))],
			date:        from.AddDate(0, 0, rand.Intn(days)),
		}

		key := fmt.Sprintf("%d:%s:%d", slot.officerID, slot.date.Format("2006-01-02"), slot.shiftTypeID)
		if used[key] {
			continue
		}
		used[key] = true
		slots = append(slots, slot)
	}

	return slots
}

// SeedRandomData 生成一套可用于联调的随机数据：
// 警员、班次、固定排班（含搭档）、假期余额和少量例外记录
func SeedRandomData(cfg *config.Config, repo *repository.Repository) {
	// 班次
	shiftTypes := utils.GenerateRandomShiftTypes()
	for _, st := range shiftTypes {
		if err := repo.CreateShiftType(st); err != nil {
			slog.Error("创建班次失败", "name", st.Name, "error", err)
			return
		}
	}

	// 警员
	officers := make([]*domain.Officer, 0, officerCount)
	for i := 0; i < officerCount; i++ {
		officer, err := utils.GenerateRandomOfficer(cfg.Seed.Officer.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("生成随机警员失败", "error", err)
			return
		}
		if err := repo.CreateOfficer(officer); err != nil {
			slog.Error("创建警员失败", "username", officer.Username, "error", err)
			continue
		}
		officers = append(officers, officer)

		// 初始假期余额，覆盖所有假期类型，避免随机休假把余额扣成负数
		for _, ptoType := range utils.PTOTypes() {
			if err := repo.AdjustLeaveBalance(officer.ID, ptoType, initialLeaveHours); err != nil {
				slog.Error("初始化假期余额失败", "officerID", officer.ID, "ptoType", ptoType, "error", err)
			}
		}
	}

	if len(officers) < 2 {
		slog.Error("警员数量不足，跳过排班数据")
		return
	}

	startDate := time.Now().AddDate(0, -1, 0)

	// 固定排班，前若干对警员结成搭档，
	// 搭档双方必须在同一天同一班次，并且互相回指
	for i := 0; i < len(officers); i += 2 {
		st := shiftTypes[rand.Intn(len(shiftTypes))]
		dayOfWeek := int32(rand.Intn(7))
		unit := utils.GenerateRandomUnit()

		first := officers[i]
		ra := &domain.RecurringAssignment{
			OfficerID:   first.ID,
			DayOfWeek:   dayOfWeek,
			ShiftTypeID: st.ID,
			Position:    utils.GenerateRandomPosition(),
			Unit:        unit,
			StartDate:   startDate,
		}

		if i+1 >= len(officers) {
			if err := repo.CreateRecurringAssignment(ra); err != nil {
				slog.Error("创建固定排班失败", "officerID", first.ID, "error", err)
			}
			continue
		}

		second := officers[i+1]
		partnerRA := &domain.RecurringAssignment{
			OfficerID:   second.ID,
			DayOfWeek:   dayOfWeek,
			ShiftTypeID: st.ID,
			Position:    utils.GenerateRandomPosition(),
			Unit:        unit,
			StartDate:   startDate,
		}

		if i/2 < partnershipCount {
			ra.IsPartnership = true
			ra.PartnerOfficerID = &second.ID
			partnerRA.IsPartnership = true
			partnerRA.PartnerOfficerID = &first.ID
		}

		if err := repo.CreateRecurringAssignment(ra); err != nil {
			slog.Error("创建固定排班失败", "officerID", first.ID, "error", err)
		}
		if err := repo.CreateRecurringAssignment(partnerRA); err != nil {
			slog.Error("创建固定排班失败", "officerID", second.ID, "error", err)
		}
	}

	// 例外记录：一半是休假，一半是单日调整。
	// 休假必须经过余额核算引擎，直接插表不会扣减余额；
	// (警员, 日期, 班次) 组合不允许重复，重复的 key 解析器会拒绝
	engine := roster.NewEngine(repo, nil)

	officerIDs := make([]int64, 0, len(officers))
	for _, o := range officers {
		officerIDs = append(officerIDs, o.ID)
	}
	shiftTypeIDs := make([]int64, 0, len(shiftTypes))
	for _, st := range shiftTypes {
		shiftTypeIDs = append(shiftTypeIDs, st.ID)
	}

	slots := uniqueExceptionSlots(officerIDs, shiftTypeIDs, time.Now(), 14, exceptionCount)
	for i, slot := range slots {
		exc := &domain.ScheduleException{
			OfficerID:   slot.officerID,
			Date:        slot.date,
			ShiftTypeID: slot.shiftTypeID,
		}

		if i%2 == 0 {
			exc.IsOff = true
			exc.PTOType = utils.GenerateRandomPTOType()
			if _, err := engine.DeductLeave(exc); err != nil {
				slog.Error("创建休假例外失败", "officerID", exc.OfficerID, "error", err)
			}
			continue
		}

		position := utils.GenerateRandomPosition()
		exc.Position = &position
		if err := repo.CreateScheduleException(exc); err != nil {
			slog.Error("创建例外记录失败", "officerID", exc.OfficerID, "error", err)
		}
	}

	slog.Info("随机数据生成完成", "officers", len(officers), "shiftTypes", len(shiftTypes))
}
