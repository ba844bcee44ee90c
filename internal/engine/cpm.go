package engine

import (
	"sort"
	"time"

	"github.com/blues/cps/internal/model"
)

// successorEdge 逆推用的反向边视图
type successorEdge struct {
	succ *model.Activity
	kind model.DependencyKind
	lag  int
}

// RunCPM 执行关键路径法：正推求最早时刻、逆推求最晚时刻、计算时差与关键路径。
// 返回按拓扑序排列的关键活动 id 列表。
func RunCPM(activities []*model.Activity, scheduleStart time.Time) ([]string, error) {
	if len(activities) == 0 {
		return nil, nil
	}
	scheduleStart = model.NormalizeDate(scheduleStart)

	byId := make(map[string]*model.Activity, len(activities))
	for _, act := range activities {
		byId[act.Id] = act
	}
	order, err := topoOrder(activities, byId)
	if err != nil {
		return nil, err
	}

	// 正推：最早开始取计划起点、活动约束与全部前序边候选值的最大者
	for _, act := range order {
		es := scheduleStart
		if c := act.NotEarlierThan(); !c.IsZero() {
			es = model.MaxDate(es, c)
		}
		for _, link := range act.Predecessors {
			pred, ok := byId[link.ActivityId]
			if !ok {
				continue
			}
			var cand time.Time
			switch link.Kind {
			case model.StartStart:
				cand = model.AddDays(pred.EarlyStart, link.LagDays)
			case model.FinishFinish:
				cand = model.AddDays(pred.EarlyFinish, link.LagDays-act.DurationDays)
			case model.StartFinish:
				cand = model.AddDays(pred.EarlyStart, link.LagDays-act.DurationDays)
			default:
				cand = model.AddDays(pred.EarlyFinish, link.LagDays)
			}
			es = model.MaxDate(es, cand)
		}
		act.EarlyStart = es
		act.EarlyFinish = model.AddDays(es, act.DurationDays)
	}

	// 项目最早完工日 = 全部活动最早完成的最大值
	projectFinish := activities[0].EarlyFinish
	for _, act := range activities[1:] {
		projectFinish = model.MaxDate(projectFinish, act.EarlyFinish)
	}

	reverse := make(map[string][]successorEdge, len(activities))
	for _, act := range activities {
		for _, link := range act.Predecessors {
			reverse[link.ActivityId] = append(reverse[link.ActivityId], successorEdge{
				succ: act, kind: link.Kind, lag: link.LagDays,
			})
		}
	}

	// 逆推：最晚完成取项目完工日与全部后序边候选值的最小者
	for i := len(order) - 1; i >= 0; i-- {
		act := order[i]
		lf := projectFinish
		for _, edge := range reverse[act.Id] {
			var cand time.Time
			switch edge.kind {
			case model.StartStart:
				cand = model.AddDays(edge.succ.LateStart, act.DurationDays-edge.lag)
			case model.FinishFinish:
				cand = model.AddDays(edge.succ.LateFinish, -edge.lag)
			case model.StartFinish:
				cand = model.AddDays(edge.succ.LateFinish, act.DurationDays-edge.lag)
			default:
				cand = model.AddDays(edge.succ.LateStart, -edge.lag)
			}
			lf = model.MinDate(lf, cand)
		}
		act.LateFinish = lf
		act.LateStart = model.AddDays(lf, -act.DurationDays)

		// 时差不为负，零时差即关键活动
		float := model.DaysBetween(act.EarlyStart, act.LateStart)
		if float < 0 {
			float = 0
		}
		act.FloatDays = float
		act.Critical = float == 0

		// 名义日期跟随最早时刻表
		act.StartDate = act.EarlyStart
		act.EndDate = act.EarlyFinish
	}

	critical := make([]string, 0, len(order))
	for _, act := range order {
		if act.Critical {
			critical = append(critical, act.Id)
		}
	}
	return critical, nil
}

// topoOrder Kahn 拓扑排序，就绪队列按 id 升序保证结果确定
func topoOrder(activities []*model.Activity, byId map[string]*model.Activity) ([]*model.Activity, error) {
	indegree := make(map[string]int, len(activities))
	for _, act := range activities {
		for _, link := range act.Predecessors {
			if _, ok := byId[link.ActivityId]; ok {
				indegree[act.Id]++
			}
		}
	}

	queue := make([]string, 0, len(activities))
	for _, act := range activities {
		if indegree[act.Id] == 0 {
			queue = append(queue, act.Id)
		}
	}
	sort.Strings(queue)

	order := make([]*model.Activity, 0, len(activities))
	placed := make(map[string]bool, len(activities))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		act := byId[id]
		order = append(order, act)
		placed[id] = true

		ready := make([]string, 0, len(act.SuccessorIds))
		for _, succId := range act.SuccessorIds {
			if _, ok := byId[succId]; !ok {
				continue
			}
			indegree[succId]--
			if indegree[succId] == 0 {
				ready = append(ready, succId)
			}
		}
		sort.Strings(ready)
		queue = append(queue, ready...)
	}

	if len(order) != len(activities) {
		// 未入序的节点位于环上
		remaining := make([]string, 0)
		for _, act := range activities {
			if !placed[act.Id] {
				remaining = append(remaining, act.Id)
			}
		}
		sort.Strings(remaining)
		return nil, newConfigError(ConfigErrorCycle, "topological sort failed, dependency graph contains a cycle", remaining...)
	}
	return order, nil
}
