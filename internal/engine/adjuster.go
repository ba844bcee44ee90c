package engine

import (
	"math"

	"github.com/blues/cps/internal/model"
)

// ApplyWeatherBuffers 给受天气影响的活动追加缓冲工期。
// 每条天气约束的缓冲天数都计入，结束日期按新工期重算；
// 最早/最晚时刻留待调用方重跑 CPM 刷新。返回被加长的活动数。
func ApplyWeatherBuffers(activities []*model.Activity, constraints []model.WeatherConstraint) int {
	extra := 0
	for _, c := range constraints {
		if c.BufferDays > 0 {
			extra += c.BufferDays
		}
	}
	if extra == 0 {
		return 0
	}
	inflated := 0
	for _, act := range activities {
		if !act.WeatherSensitive {
			continue
		}
		act.DurationDays += extra
		act.EndDate = model.AddDays(act.StartDate, act.DurationDays)
		inflated++
	}
	return inflated
}

// ApplyScheduleBuffer 给整个计划追加天气、质量、风险三类缓冲：
// 质量与风险缓冲按总工期乘比例向上取整。预测完工与总工期同步后移，
// 基线完工保持不变。返回本次追加的缓冲天数。
func ApplyScheduleBuffer(schedule *model.Schedule, weatherDays int, qualityBuffer, riskBuffer float64) int {
	if weatherDays < 0 {
		weatherDays = 0
	}
	total := schedule.TotalDurationDays
	buffer := weatherDays + ceilFraction(total, qualityBuffer) + ceilFraction(total, riskBuffer)
	if buffer <= 0 {
		return 0
	}
	schedule.ForecastFinish = model.AddDays(schedule.ForecastFinish, buffer)
	schedule.TotalDurationDays += buffer
	schedule.BufferDays += buffer
	return buffer
}

// ceilFraction 天数乘比例后向上取整，比例非正时记零
func ceilFraction(days int, fraction float64) int {
	if fraction <= 0 || days <= 0 {
		return 0
	}
	return int(math.Ceil(float64(days) * fraction))
}
