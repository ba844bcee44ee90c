package model

// ResourceKind 资源类型
type ResourceKind string

const (
	ResourceLabor     ResourceKind = "labor"     // 人工
	ResourceMaterial  ResourceKind = "material"  // 材料
	ResourceEquipment ResourceKind = "equipment" // 设备
)

// ResourceDemand 活动的资源需求
type ResourceDemand struct {
	Kind       ResourceKind `json:"kind"`
	ResourceId string       `json:"resource_id"` // 资源标识（工种/材料编号/设备编号）
	Quantity   float64      `json:"quantity"`
	Unit       string       `json:"unit"`
	Cost       float64      `json:"cost"`
	Critical   bool         `json:"critical"`    // 瓶颈资源标记（如唯一的稀缺设备）
}
