// Package catalog 持有静态职业目录：职业分组 → 岗位 → 里程碑列表。
// 数据编译期内嵌，启动时加载一次，运行期只读，所有会话共享。
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed careers.json
var careersJSON []byte

type Badge struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Milestone task文本即身份键：进度集合中保存的就是task原文
type Milestone struct {
	Task           string `json:"task"`
	Badge          Badge  `json:"badge"`
	ProgressWeight int    `json:"progressWeight"`
}

type JobRole struct {
	Milestones []Milestone `json:"milestones"`
}

// Catalog group名 → role名 → 岗位
type Catalog map[string]map[string]JobRole

// Load 解析内嵌目录并做一次性校验
func Load() (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(careersJSON, &c); err != nil {
		return nil, fmt.Errorf("parse careers catalog: %w", err)
	}

	seen := make(map[string]string)
	for group, roles := range c {
		for role, jr := range roles {
			if len(jr.Milestones) == 0 {
				return nil, fmt.Errorf("role %q in group %q has no milestones", role, group)
			}
			for _, m := range jr.Milestones {
				if m.ProgressWeight < 1 || m.ProgressWeight > 100 {
					return nil, fmt.Errorf("milestone %q has weight %d outside [1,100]", m.Task, m.ProgressWeight)
				}
				if prev, dup := seen[m.Task]; dup {
					return nil, fmt.Errorf("milestone task %q duplicated across %q and %q", m.Task, prev, role)
				}
				seen[m.Task] = role
			}
		}
	}
	return c, nil
}

// Groups 返回排序后的分组名
func (c Catalog) Groups() []string {
	out := make([]string, 0, len(c))
	for g := range c {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Roles 返回某分组下排序后的岗位名
func (c Catalog) Roles(group string) []string {
	roles, ok := c[group]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(roles))
	for r := range roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// FindRole 跨分组按岗位名查找
func (c Catalog) FindRole(role string) (JobRole, bool) {
	for _, roles := range c {
		if jr, ok := roles[role]; ok {
			return jr, true
		}
	}
	return JobRole{}, false
}
