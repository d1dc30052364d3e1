package utils

import (
	"sort"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestTernary(t *testing.T) {
	assert.Equal(t, "a", Ternary(true, "a", "b"))
	assert.Equal(t, "b", Ternary(false, "a", "b"))
}

func TestArrayContains(t *testing.T) {
	idx, found := ArrayContains([]string{"inquiries", "cases"}, func(elem string) bool {
		return elem == "cases"
	})
	assert.True(t, found)
	assert.Equal(t, 1, idx)

	idx, found = ArrayContains([]string{"inquiries"}, func(elem string) bool {
		return elem == "accounts"
	})
	assert.False(t, found)
	assert.Equal(t, -1, idx)
}

func TestMapKeys(t *testing.T) {
	keys := MapKeys(map[string]string{"inquiries": "/inquiries", "cases": "/cases"})
	sort.Strings(keys)
	assert.Equal(t, []string{"cases", "inquiries"}, keys)

	assert.Empty(t, MapKeys(map[string]int{}))
}

func TestIsValidSubcommand(t *testing.T) {
	commands := []*cobra.Command{{Use: "spec"}, {Use: "sync"}}
	assert.True(t, IsValidSubcommand(commands, "sync"))
	assert.False(t, IsValidSubcommand(commands, "drop"))
}
