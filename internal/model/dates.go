package model

import (
	"time"
)

// 引擎内所有日期运算按整天进行，日期统一归一到 UTC 零点。

// NormalizeDate 将时间归一到当天的 UTC 零点
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays 日期加减天数
func AddDays(t time.Time, days int) time.Time {
	return NormalizeDate(t).AddDate(0, 0, days)
}

// DaysBetween 两个日期相差的整天数（to - from）
func DaysBetween(from, to time.Time) int {
	from = NormalizeDate(from)
	to = NormalizeDate(to)
	return int(to.Sub(from).Hours() / 24)
}

// MaxDate 返回较晚的日期
func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// MinDate 返回较早的日期
func MinDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
