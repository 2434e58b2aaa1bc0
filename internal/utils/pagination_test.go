package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePageParams(t *testing.T) {
	limit, cursor := ParsePageParams("", "")
	require.Equal(t, DefaultPageLimit, limit)
	require.Empty(t, cursor)

	limit, _ = ParsePageParams("50", "abc")
	require.Equal(t, 50, limit)

	limit, _ = ParsePageParams("500", "")
	require.Equal(t, MaxPageLimit, limit)

	limit, _ = ParsePageParams("-3", "")
	require.Equal(t, DefaultPageLimit, limit)

	limit, _ = ParsePageParams("garbage", "")
	require.Equal(t, DefaultPageLimit, limit)
}

func TestBuildPageMeta(t *testing.T) {
	m := BuildPageMeta(20, 20, "", "last-id", true)
	require.True(t, m.HasNextPage)
	require.False(t, m.HasPreviousPage)
	require.Equal(t, "last-id", m.NextCursor)
	require.Equal(t, 20, m.InPage)

	m = BuildPageMeta(5, 20, "prev-id", "", false)
	require.False(t, m.HasNextPage)
	require.True(t, m.HasPreviousPage)
	require.Empty(t, m.NextCursor)
}
