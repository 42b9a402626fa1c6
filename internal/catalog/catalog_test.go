package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, c)

	for group, roles := range c {
		require.NotEmpty(t, roles, "group %s has no roles", group)
		for role, jr := range roles {
			require.NotEmpty(t, jr.Milestones, "role %s has no milestones", role)
			for _, m := range jr.Milestones {
				assert.NotEmpty(t, m.Task)
				assert.NotEmpty(t, m.Badge.Name)
				assert.GreaterOrEqual(t, m.ProgressWeight, 1)
				assert.LessOrEqual(t, m.ProgressWeight, 100)
			}
		}
	}
}

func TestGroupsSorted(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	groups := c.Groups()
	require.NotEmpty(t, groups)
	for i := 1; i < len(groups); i++ {
		assert.Less(t, groups[i-1], groups[i])
	}
}

func TestRolesUnknownGroup(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.Nil(t, c.Roles("No Such Group"))
}

func TestFindRoleAcrossGroups(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	jr, ok := c.FindRole("Software Engineer")
	require.True(t, ok)
	assert.NotEmpty(t, jr.Milestones)

	_, ok = c.FindRole("Dragon Tamer")
	assert.False(t, ok)
}

func TestMilestoneTasksUniqueAcrossCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, roles := range c {
		for _, jr := range roles {
			for _, m := range jr.Milestones {
				assert.False(t, seen[m.Task], "duplicate task %q", m.Task)
				seen[m.Task] = true
			}
		}
	}
}
