package service

import (
	"career_compass_backend/internal/catalog"
	"career_compass_backend/internal/model"
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProgressStore struct {
	saved   *model.UserProgress
	working map[string]bool
	upserts int
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{working: make(map[string]bool)}
}

func (f *fakeProgressStore) FindByUserID(userID uint) (*model.UserProgress, error) {
	if f.saved == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.saved, nil
}

func (f *fakeProgressStore) Upsert(p *model.UserProgress) error {
	f.upserts++
	f.saved = p
	return nil
}

func (f *fakeProgressStore) MirrorWorkingSet(ctx context.Context, userID uint, tasks []string) error {
	f.working = make(map[string]bool, len(tasks))
	for _, t := range tasks {
		f.working[t] = true
	}
	return nil
}

func (f *fakeProgressStore) ToggleWorkingTask(ctx context.Context, userID uint, task string) (bool, error) {
	if f.working[task] {
		delete(f.working, task)
		return false, nil
	}
	f.working[task] = true
	return true, nil
}

func (f *fakeProgressStore) WorkingTasks(ctx context.Context, userID uint) ([]string, error) {
	tasks := make([]string, 0, len(f.working))
	for t := range f.working {
		tasks = append(tasks, t)
	}
	sort.Strings(tasks)
	return tasks, nil
}

func milestonesFixture() []catalog.Milestone {
	return []catalog.Milestone{
		{Task: "learn basics", Badge: catalog.Badge{Name: "Starter", Icon: "🌱"}, ProgressWeight: 40},
		{Task: "build project", Badge: catalog.Badge{Name: "Builder", Icon: "🛠️"}, ProgressWeight: 60},
	}
}

func TestComputePercentWeighted(t *testing.T) {
	ms := milestonesFixture()

	assert.Equal(t, 0, ComputePercent(ms, nil))
	assert.Equal(t, 40, ComputePercent(ms, map[string]bool{"learn basics": true}))
	assert.Equal(t, 60, ComputePercent(ms, map[string]bool{"build project": true}))
	assert.Equal(t, 100, ComputePercent(ms, map[string]bool{"learn basics": true, "build project": true}))
}

func TestComputePercentZeroTotal(t *testing.T) {
	// 目录异常时的兜底：分母按100计
	assert.Equal(t, 0, ComputePercent(nil, nil))
	assert.Equal(t, 0, ComputePercent([]catalog.Milestone{}, map[string]bool{"x": true}))
}

func TestComputePercentRounds(t *testing.T) {
	ms := []catalog.Milestone{
		{Task: "a", ProgressWeight: 1},
		{Task: "b", ProgressWeight: 1},
		{Task: "c", ProgressWeight: 1},
	}
	// 1/3 → 33, 2/3 → 67
	assert.Equal(t, 33, ComputePercent(ms, map[string]bool{"a": true}))
	assert.Equal(t, 67, ComputePercent(ms, map[string]bool{"a": true, "b": true}))
}

func TestComputePercentMonotonic(t *testing.T) {
	ms := milestonesFixture()
	completed := map[string]bool{}
	last := ComputePercent(ms, completed)
	for _, m := range ms {
		completed[m.Task] = true
		cur := ComputePercent(ms, completed)
		assert.GreaterOrEqual(t, cur, last)
		assert.GreaterOrEqual(t, cur, 0)
		assert.LessOrEqual(t, cur, 100)
		last = cur
	}
}

func TestSaveTwiceIsIdempotent(t *testing.T) {
	store := newFakeProgressStore()
	store.working["learn basics"] = true
	store.working["build project"] = true
	svc := NewProgressService(nil, store)
	ctx := context.Background()

	first, err := svc.Save(ctx, 7)
	require.NoError(t, err)
	second, err := svc.Save(ctx, 7)
	require.NoError(t, err)

	// 两次保存得到同一份文档，工作副本不被重复保存扰动
	assert.ElementsMatch(t, first.MilestoneList(), second.MilestoneList())
	assert.ElementsMatch(t, []string{"build project", "learn basics"}, store.saved.MilestoneList())
	assert.Len(t, store.working, 2)
	assert.Equal(t, 2, store.upserts)
}

func TestSaveEmptyWorkingSetWritesEmptyDoc(t *testing.T) {
	store := newFakeProgressStore()
	svc := NewProgressService(nil, store)

	saved, err := svc.Save(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, saved.MilestoneList())
}

func TestEarnedBadgesDeduplicatesByName(t *testing.T) {
	ms := []catalog.Milestone{
		{Task: "a", Badge: catalog.Badge{Name: "Explorer", Icon: "🧭"}, ProgressWeight: 50},
		{Task: "b", Badge: catalog.Badge{Name: "Explorer", Icon: "🧭"}, ProgressWeight: 50},
	}
	badges := earnedBadges(ms, map[string]bool{"a": true, "b": true})
	assert.Len(t, badges, 1)
	assert.Equal(t, "Explorer", badges[0].Name)
}

func TestEarnedBadgesOnlyCompleted(t *testing.T) {
	ms := milestonesFixture()
	badges := earnedBadges(ms, map[string]bool{"build project": true})
	assert.Len(t, badges, 1)
	assert.Equal(t, "Builder", badges[0].Name)
}
