package engine

import (
	"fmt"
	"strings"

	"github.com/blues/cps/internal/model"
)

// 配置错误类型（致命，中止整次排程）
const (
	ConfigErrorCycle           = "dependency_cycle" // 依赖图存在环
	ConfigErrorMissingPhase    = "missing_phase"    // 工作项映射到不存在的阶段
	ConfigErrorBadRelationship = "bad_relationship" // 非法的依赖关系类型
	ConfigErrorEmptyInput      = "empty_input"      // 输入不完整
)

// ConfigError 结构化配置错误，携带出错实体便于调用方定位
type ConfigError struct {
	Kind     string   `json:"kind"`
	Entities []string `json:"entities,omitempty"`
	Message  string   `json:"message"`
}

// Error 实现 error 接口
func (e *ConfigError) Error() string {
	if len(e.Entities) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s [%s]", e.Kind, e.Message, strings.Join(e.Entities, ", "))
}

// newConfigError 创建配置错误
func newConfigError(kind, message string, entities ...string) *ConfigError {
	return &ConfigError{Kind: kind, Message: message, Entities: entities}
}

// Diagnostics 非致命诊断收集器
type Diagnostics struct {
	items []model.Diagnostic
}

// Warn 记录数据质量告警
func (d *Diagnostics) Warn(code, subject, format string, args ...interface{}) {
	d.items = append(d.items, model.Diagnostic{
		Severity: model.DiagnosticWarning,
		Code:     code,
		Subject:  subject,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Info 记录提示信息
func (d *Diagnostics) Info(code, subject, format string, args ...interface{}) {
	d.items = append(d.items, model.Diagnostic{
		Severity: model.DiagnosticInfo,
		Code:     code,
		Subject:  subject,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Append 合并另一批诊断
func (d *Diagnostics) Append(items []model.Diagnostic) {
	d.items = append(d.items, items...)
}

// Items 返回全部诊断
func (d *Diagnostics) Items() []model.Diagnostic {
	return d.items
}
