package model

// WorkItem 造价估算输出的工作项（排程引擎的输入边界）
type WorkItem struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	DurationDays   int             `json:"duration_days"`
	LaborLines     []LaborLine     `json:"labor_lines,omitempty"`
	MaterialLines  []MaterialLine  `json:"material_lines,omitempty"`
	EquipmentLines []EquipmentLine `json:"equipment_lines,omitempty"`
}

// LaborLine 人工费用行
type LaborLine struct {
	Trade     string  `json:"trade"`      // 工种
	Hours     float64 `json:"hours"`      // 工时
	TotalCost float64 `json:"total_cost"` // 总费用
}

// MaterialLine 材料费用行
type MaterialLine struct {
	Id        string  `json:"id"`         // 材料编号
	Quantity  float64 `json:"quantity"`   // 数量
	Unit      string  `json:"unit"`       // 单位
	TotalCost float64 `json:"total_cost"` // 总费用
}

// EquipmentLine 设备费用行
type EquipmentLine struct {
	Id           string  `json:"id"`            // 设备编号
	DurationDays int     `json:"duration_days"` // 使用天数
	TotalCost    float64 `json:"total_cost"`    // 总费用
}
