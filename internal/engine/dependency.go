package engine

import (
	"sort"
	"strings"

	"github.com/blues/cps/internal/model"
)

// DependencyRule 名称匹配规则：凡 from 子串命中前序活动、to 子串命中后序活动即连边
type DependencyRule struct {
	FromPattern string               `json:"from_pattern"`
	ToPattern   string               `json:"to_pattern"`
	Kind        model.DependencyKind `json:"kind"`
	LagDays     int                  `json:"lag_days"`
}

// defaultDependencyRules 标准施工顺序规则表，按优先级排列
var defaultDependencyRules = []DependencyRule{
	{FromPattern: "excavation", ToPattern: "foundation", Kind: model.FinishStart, LagDays: 0},
	{FromPattern: "foundation", ToPattern: "structural", Kind: model.FinishStart, LagDays: 0},
	// 混凝土养护两天后才能上主体围护
	{FromPattern: "structural", ToPattern: "envelope", Kind: model.FinishStart, LagDays: 2},
	{FromPattern: "envelope", ToPattern: "mep", Kind: model.FinishStart, LagDays: 1},
	{FromPattern: "envelope", ToPattern: "rough", Kind: model.FinishStart, LagDays: 1},
	// 隐蔽工程完成三天后进场精装
	{FromPattern: "rough", ToPattern: "finish", Kind: model.FinishStart, LagDays: 3},
	{FromPattern: "finish", ToPattern: "punch", Kind: model.FinishStart, LagDays: 0},
}

// DefaultDependencyRules 返回标准规则表副本
func DefaultDependencyRules() []DependencyRule {
	out := make([]DependencyRule, len(defaultDependencyRules))
	copy(out, defaultDependencyRules)
	return out
}

// ResolveDependencies 按规则表在活动间连边并校验无环
func ResolveDependencies(activities []*model.Activity, rules []DependencyRule) error {
	byId := make(map[string]*model.Activity, len(activities))
	for _, act := range activities {
		byId[act.Id] = act
	}

	// 同一有序活动对只保留首条命中规则的边
	seen := make(map[[2]string]bool)
	for _, rule := range rules {
		if !model.ValidDependencyKind(rule.Kind) {
			return newConfigError(ConfigErrorBadRelationship,
				"dependency rule has unknown relationship kind "+string(rule.Kind),
				rule.FromPattern+"->"+rule.ToPattern)
		}
		from := strings.ToLower(rule.FromPattern)
		to := strings.ToLower(rule.ToPattern)
		for _, pred := range activities {
			if !strings.Contains(strings.ToLower(pred.Name), from) {
				continue
			}
			for _, succ := range activities {
				if succ.Id == pred.Id {
					continue
				}
				if !strings.Contains(strings.ToLower(succ.Name), to) {
					continue
				}
				key := [2]string{pred.Id, succ.Id}
				if seen[key] {
					continue
				}
				seen[key] = true
				succ.Predecessors = append(succ.Predecessors, model.PredecessorLink{
					ActivityId: pred.Id,
					Kind:       rule.Kind,
					LagDays:    rule.LagDays,
				})
				pred.SuccessorIds = append(pred.SuccessorIds, succ.Id)
			}
		}
	}

	if cycle := findCycle(activities, byId); len(cycle) > 0 {
		return newConfigError(ConfigErrorCycle, "dependency graph contains a cycle", cycle...)
	}
	return nil
}

// DFS 着色状态
const (
	colorWhite = iota // 未访问
	colorGray         // 访问中
	colorBlack        // 已完成
)

// findCycle 深度优先检环，返回环上的活动 id（按环路顺序），无环返回 nil
func findCycle(activities []*model.Activity, byId map[string]*model.Activity) []string {
	color := make(map[string]int, len(activities))
	parent := make(map[string]string, len(activities))

	ids := make([]string, 0, len(activities))
	for _, act := range activities {
		ids = append(ids, act.Id)
	}
	sort.Strings(ids)

	var cycle []string
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = colorGray
		act := byId[id]
		succs := append([]string(nil), act.SuccessorIds...)
		sort.Strings(succs)
		for _, next := range succs {
			if _, ok := byId[next]; !ok {
				continue
			}
			switch color[next] {
			case colorWhite:
				parent[next] = id
				if visit(next) {
					return true
				}
			case colorGray:
				// 回边闭合，沿 parent 链还原环路
				cycle = []string{next}
				for cur := id; cur != next; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				for i, j := 1, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return true
			}
		}
		color[id] = colorBlack
		return false
	}

	for _, id := range ids {
		if color[id] == colorWhite {
			if visit(id) {
				return cycle
			}
		}
	}
	return nil
}
