package model

// WeatherConstraintKind 天气约束类型
type WeatherConstraintKind string

const (
	WeatherRain        WeatherConstraintKind = "rain"        // 降雨
	WeatherTemperature WeatherConstraintKind = "temperature" // 极端温度
	WeatherWind        WeatherConstraintKind = "wind"        // 大风
	WeatherSnow        WeatherConstraintKind = "snow"        // 降雪
)

// WeatherConstraint 天气约束（声明式记录，由天气/缓冲调整器读取）
type WeatherConstraint struct {
	Kind       WeatherConstraintKind `json:"kind"`
	Threshold  float64               `json:"threshold"`   // 触发阈值（毫米/摄氏度/米每秒）
	BufferDays int                   `json:"buffer_days"` // 受影响活动追加的缓冲天数
}

// RiskMitigation 风险缓解记录
type RiskMitigation struct {
	RiskId          string  `json:"risk_id"`
	Probability     float64 `json:"probability"`      // 发生概率 0-1
	ImpactDays      int     `json:"impact_days"`      // 发生后的工期影响（天）
	Mitigation      string  `json:"mitigation"`       // 缓解措施
	ContingencyDays int     `json:"contingency_days"` // 应急缓冲天数
}
