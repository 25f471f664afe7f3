package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	dgerrors "datagen/src/errors"
)

func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"123", 120},
		{"1000", 1000},
		{"5K", 5120},
		{"5k", 5120},
		{"1M", 1048580},
		{"1g", 1073741820},
		{"1T", 1099511627780},
	}
	for _, c := range cases {
		got, err := ParseSize(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got, c.in)
	}
}

func TestParseSizeInvalid(t *testing.T) {
	for _, in := range []string{"", "K", "12X", "abc", "12.5K", "-5K", "+5K", "5KB", "K5"} {
		_, err := ParseSize(in)
		require.Error(t, err, in)
		require.True(t, dgerrors.ErrInvalidSizeFormat.Equal(err), in)
	}
}

func countConfig(records int64, files int) *Config {
	cfg := Default()
	cfg.Common.Records = records
	cfg.Common.Files = files
	return cfg
}

func sizeConfig(size string, files int) *Config {
	cfg := Default()
	cfg.Common.Size = size
	cfg.Common.Files = files
	return cfg
}

func TestBuildPlanCountMode(t *testing.T) {
	plan, err := BuildPlan(countConfig(2500, 0))
	require.NoError(t, err)
	require.False(t, plan.BySize)
	require.Equal(t, 1, plan.NumFiles)
	require.Equal(t, int64(2500), plan.PerFile)

	plan, err = BuildPlan(countConfig(250000, 0))
	require.NoError(t, err)
	require.Equal(t, 2, plan.NumFiles)
	require.Equal(t, int64(125000), plan.PerFile)
}

func TestBuildPlanSizeMode(t *testing.T) {
	// 1 MiB is below the 10 MiB per-file ceiling.
	plan, err := BuildPlan(sizeConfig("1M", 0))
	require.NoError(t, err)
	require.True(t, plan.BySize)
	require.Equal(t, int64(1048580), plan.Total)
	require.Equal(t, 1, plan.NumFiles)

	plan, err = BuildPlan(sizeConfig("100M", 0))
	require.NoError(t, err)
	require.Equal(t, 10, plan.NumFiles)
	require.Equal(t, int64(10485760), plan.PerFile)

	// floor(15 MiB / 10 MiB) = 1
	plan, err = BuildPlan(sizeConfig("15M", 0))
	require.NoError(t, err)
	require.Equal(t, 1, plan.NumFiles)
}

func TestBuildPlanInvalidSize(t *testing.T) {
	_, err := BuildPlan(sizeConfig("12Q", 0))
	require.Error(t, err)
	require.True(t, dgerrors.ErrInvalidSizeFormat.Equal(err))
}

func TestBuildPlanExplicitFiles(t *testing.T) {
	// An explicit file count overrides the auto-computed one even below the
	// per-file ceiling.
	plan, err := BuildPlan(countConfig(2500, 3))
	require.NoError(t, err)
	require.Equal(t, 3, plan.NumFiles)
	require.Equal(t, int64(833), plan.PerFile)
}

func TestFileQuotaSumsToTotal(t *testing.T) {
	plan, err := BuildPlan(countConfig(2500, 3))
	require.NoError(t, err)

	var sum int64
	quotas := make([]int64, 0, plan.NumFiles)
	for i := 1; i <= plan.NumFiles; i++ {
		q := plan.FileQuota(i)
		quotas = append(quotas, q)
		sum += q
	}
	require.Equal(t, []int64{833, 833, 834}, quotas)
	require.Equal(t, int64(2500), sum)
}

func TestResolveNumFilesClamped(t *testing.T) {
	require.Equal(t, 1, resolveNumFiles(0, 5, 100))
	require.Equal(t, 1, resolveNumFiles(-2, 5, 100))
	require.Equal(t, 7, resolveNumFiles(7, 5, 100))
}
