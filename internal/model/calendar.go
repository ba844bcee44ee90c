package model

import (
	"time"
)

// ResourceCalendar 共享资源日历（整个排程过程只读）
type ResourceCalendar struct {
	WorkingWeekdays []time.Weekday `json:"working_weekdays"`    // 工作日（0=周日）
	DayStart        string         `json:"day_start"`           // 每日开工时间 HH:MM
	DayEnd          string         `json:"day_end"`             // 每日收工时间 HH:MM
	Holidays        []time.Time    `json:"holidays,omitempty"`
	Shutdowns       []DateRange    `json:"shutdowns,omitempty"` // 停工时段
	Overtime        OvertimePolicy `json:"overtime"`
}

// DateRange 日期区间（含端点）
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains 判断日期是否落在区间内
func (r DateRange) Contains(d time.Time) bool {
	d = NormalizeDate(d)
	return !d.Before(NormalizeDate(r.From)) && !d.After(NormalizeDate(r.To))
}

// Overlaps 判断两个日期区间是否重叠
func (r DateRange) Overlaps(other DateRange) bool {
	return !NormalizeDate(r.From).After(NormalizeDate(other.To)) &&
		!NormalizeDate(other.From).After(NormalizeDate(r.To))
}

// OvertimePolicy 加班政策
type OvertimePolicy struct {
	Authorized     bool    `json:"authorized"`      // 是否允许加班
	MaxHoursDay    float64 `json:"max_hours_day"`   // 每日加班上限（小时）
	MaxHoursWeek   float64 `json:"max_hours_week"`  // 每周加班上限（小时）
	CostMultiplier float64 `json:"cost_multiplier"` // 加班费率系数
}

// DefaultCalendar 默认日历：周一至周五工作，8:00-17:00，不允许加班
func DefaultCalendar() ResourceCalendar {
	return ResourceCalendar{
		WorkingWeekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		DayStart: "08:00",
		DayEnd:   "17:00",
		Overtime: OvertimePolicy{
			Authorized:     false,
			MaxHoursDay:    2,
			MaxHoursWeek:   10,
			CostMultiplier: 1.5,
		},
	}
}

// IsWorkingDay 判断某天是否为工作日（排除周末、节假日和停工时段）
func (c ResourceCalendar) IsWorkingDay(d time.Time) bool {
	d = NormalizeDate(d)

	weekdayOK := false
	for _, wd := range c.WorkingWeekdays {
		if d.Weekday() == wd {
			weekdayOK = true
			break
		}
	}
	if !weekdayOK {
		return false
	}

	for _, h := range c.Holidays {
		if NormalizeDate(h).Equal(d) {
			return false
		}
	}

	for _, s := range c.Shutdowns {
		if s.Contains(d) {
			return false
		}
	}

	return true
}

// WorkingDaysBetween 统计 [from, to) 区间内的工作日数量
func (c ResourceCalendar) WorkingDaysBetween(from, to time.Time) int {
	from = NormalizeDate(from)
	to = NormalizeDate(to)
	if !from.Before(to) {
		return 0
	}

	count := 0
	for d := from; d.Before(to); d = AddDays(d, 1) {
		if c.IsWorkingDay(d) {
			count++
		}
	}
	return count
}

// ShutdownsOverlapping 返回与给定区间重叠的全部停工时段
func (c ResourceCalendar) ShutdownsOverlapping(from, to time.Time) []DateRange {
	var overlapping []DateRange
	window := DateRange{From: from, To: to}
	for _, s := range c.Shutdowns {
		if s.Overlaps(window) {
			overlapping = append(overlapping, s)
		}
	}
	return overlapping
}
