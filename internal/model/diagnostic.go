package model

// DiagnosticSeverity 诊断级别
type DiagnosticSeverity string

const (
	DiagnosticWarning DiagnosticSeverity = "warning" // 数据质量告警，排程继续
	DiagnosticInfo    DiagnosticSeverity = "info"    // 提示信息
)

// 诊断代码
const (
	DiagZeroDuration       = "zero_duration"       // 工作项工期为0
	DiagUnknownResource    = "unknown_resource"    // 资源需求缺少资源标识
	DiagUnknownActivity    = "unknown_activity"    // 进度更新引用了不存在的活动
	DiagCriticalContention = "critical_contention" // 两个关键活动争用同一资源，无法平衡
)

// Diagnostic 非致命诊断信息（随结果一并返回，由调用方决定是否继续）
type Diagnostic struct {
	Severity DiagnosticSeverity `json:"severity"`
	Code     string             `json:"code"`
	Subject  string             `json:"subject"` // 相关实体（工作项名/活动ID/资源ID）
	Message  string             `json:"message"`
}
