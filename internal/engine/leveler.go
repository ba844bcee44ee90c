package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/blues/cps/internal/model"
	"github.com/panjf2000/ants/v2"
)

// levelingEntry 组内扫描用的活动时间视图，基线时刻不动，推演写在视图上
type levelingEntry struct {
	act *model.Activity
	es  time.Time
	ef  time.Time
}

// groupResult 单个资源组的扫描结果
type groupResult struct {
	key         string
	delays      map[string]int
	contentions [][2]string
}

// LevelResources 消解同名资源上的活动时段重叠。
// 资源组之间相互独立，组数大于一时用协程池并行扫描；扫描只产生推迟提案，
// 等全部组完成后统一排序落盘，保证结果与并发调度顺序无关。
// 关键活动从不被推迟；推迟量以"不早于"约束记录，供 CPM 重算时保持。
// 返回被推迟的活动数。
func LevelResources(activities []*model.Activity, diags *Diagnostics) int {
	groups := resourceGroups(activities)
	if len(groups) == 0 {
		return 0
	}
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	results := make([]groupResult, 0, len(keys))
	var mu sync.Mutex
	scan := func(key string) {
		res := levelGroup(key, groups[key])
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
	}

	if len(keys) == 1 {
		scan(keys[0])
	} else {
		size := len(keys)
		if size > 10 {
			size = 10
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			// 池建不起来就退化为串行
			for _, key := range keys {
				scan(key)
			}
		} else {
			var wg sync.WaitGroup
			for _, key := range keys {
				key := key
				wg.Add(1)
				if err := pool.Submit(func() {
					defer wg.Done()
					scan(key)
				}); err != nil {
					wg.Done()
					scan(key)
				}
			}
			wg.Wait()
			pool.Release()
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].key < results[j].key })

	// 同一活动落在多个资源组时取最大推迟量
	delays := make(map[string]int)
	for _, res := range results {
		for id, d := range res.delays {
			if d > delays[id] {
				delays[id] = d
			}
		}
		for _, pair := range res.contentions {
			diags.Warn(model.DiagCriticalContention, res.key,
				"critical activities %s and %s contend for resource %s, neither can be delayed", pair[0], pair[1], res.key)
		}
	}
	if len(delays) == 0 {
		return 0
	}

	byId := make(map[string]*model.Activity, len(activities))
	for _, act := range activities {
		byId[act.Id] = act
	}
	ids := make([]string, 0, len(delays))
	for id := range delays {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		act := byId[id]
		d := delays[id]
		act.EarlyStart = model.AddDays(act.EarlyStart, d)
		act.EarlyFinish = model.AddDays(act.EarlyFinish, d)
		act.StartDate = act.EarlyStart
		act.EndDate = act.EarlyFinish
		act.Constraints = append(act.Constraints, model.ActivityConstraint{
			Kind:   model.ConstraintNotEarlierThan,
			Date:   act.EarlyStart,
			Reason: "resource leveling",
		})
	}
	return len(ids)
}

// resourceGroups 按（资源类型，资源 id）聚合活动，只保留成员数不少于二的组
func resourceGroups(activities []*model.Activity) map[string][]*model.Activity {
	groups := make(map[string][]*model.Activity)
	for _, act := range activities {
		seen := make(map[string]bool, len(act.Demands))
		for _, demand := range act.Demands {
			if demand.ResourceId == "" {
				continue
			}
			key := string(demand.Kind) + "/" + demand.ResourceId
			if seen[key] {
				continue
			}
			seen[key] = true
			groups[key] = append(groups[key], act)
		}
	}
	for key, members := range groups {
		if len(members) < 2 {
			delete(groups, key)
		}
	}
	return groups
}

// levelGroup 组内贪心扫描：按最早开始排序后逐对检查相邻重叠。
// 后者非关键则推迟后者消除重叠；后者关键而前者非关键则把前者整体让位到
// 关键活动之后；两者皆关键时只记冲突不动任何一方。链式影响不回头复查，
// 属既定的启发式近似。
func levelGroup(key string, members []*model.Activity) groupResult {
	entries := make([]*levelingEntry, len(members))
	for i, act := range members {
		entries[i] = &levelingEntry{act: act, es: act.EarlyStart, ef: act.EarlyFinish}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].es.Equal(entries[j].es) {
			return entries[i].es.Before(entries[j].es)
		}
		return entries[i].act.Id < entries[j].act.Id
	})

	res := groupResult{key: key, delays: make(map[string]int)}
	for i := 0; i+1 < len(entries); i++ {
		x, y := entries[i], entries[i+1]
		if !x.ef.After(y.es) {
			continue
		}
		switch {
		case !y.act.Critical:
			overlap := model.DaysBetween(y.es, x.ef)
			y.es = model.AddDays(y.es, overlap)
			y.ef = model.AddDays(y.ef, overlap)
		case !x.act.Critical:
			shift := model.DaysBetween(x.es, y.ef)
			x.es = model.AddDays(x.es, shift)
			x.ef = model.AddDays(x.ef, shift)
		default:
			res.contentions = append(res.contentions, [2]string{x.act.Id, y.act.Id})
		}
	}
	for _, entry := range entries {
		if d := model.DaysBetween(entry.act.EarlyStart, entry.es); d > 0 {
			res.delays[entry.act.Id] = d
		}
	}
	return res
}
