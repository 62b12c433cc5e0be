package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	frugal := filepath.Join(dir, "frugal.toml")
	require.NoError(t, os.WriteFile(base, []byte("name: base\nyears: 2\n"), 0644))
	require.NoError(t, os.WriteFile(frugal, []byte("name = \"frugal\"\nyears = 3\n\n[spending]\nbase_spending = 0.4\n"), 0644))

	outcomes, err := compare(context.Background(), []string{base, frugal}, 0, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "base", outcomes[0].Name)
	assert.Equal(t, 2, outcomes[0].Last.Year)
	assert.Equal(t, "frugal", outcomes[1].Name)
	assert.Equal(t, 3, outcomes[1].Last.Year)

	outcomes, err = compare(context.Background(), []string{base, frugal}, 1, zap.NewNop())
	require.NoError(t, err)
	for _, o := range outcomes {
		assert.Equal(t, 1, o.Last.Year, o.Name)
	}
	// less base spending leaves more to invest.
	assert.True(t, outcomes[1].Last.AssetSavings.GreaterThan(outcomes[0].Last.AssetSavings))
}

func TestCompare_Error(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("salary: -1\n"), 0644))

	_, err := compare(context.Background(), []string{bad, filepath.Join(dir, "missing.yaml")}, 1, zap.NewNop())
	assert.Error(t, err)
}
