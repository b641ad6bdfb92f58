package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sites.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSitesCSV(t *testing.T) {
	path := writeCSV(t, "SiteUrl\nhttps://contoso.sharepoint.com/sites/finance\nhttps://contoso.sharepoint.com/sites/hr\n")

	sites, err := ReadSitesCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://contoso.sharepoint.com/sites/finance",
		"https://contoso.sharepoint.com/sites/hr",
	}, sites)
}

func TestReadSitesCSV_CaseInsensitiveHeaderAndExtraColumns(t *testing.T) {
	path := writeCSV(t, "Owner,siteurl\nalice,https://contoso.sharepoint.com/sites/finance\n")

	sites, err := ReadSitesCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://contoso.sharepoint.com/sites/finance"}, sites)
}

func TestReadSitesCSV_SkipsBlankCells(t *testing.T) {
	path := writeCSV(t, "SiteUrl\n\nhttps://contoso.sharepoint.com/sites/finance\n   \n")

	sites, err := ReadSitesCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://contoso.sharepoint.com/sites/finance"}, sites)
}

func TestReadSitesCSV_MissingColumn(t *testing.T) {
	path := writeCSV(t, "Url\nhttps://contoso.sharepoint.com/sites/finance\n")

	_, err := ReadSitesCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no SiteUrl column")
}

func TestReadSitesCSV_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := ReadSitesCSV(path)
	assert.Error(t, err)
}

func TestReadSitesCSV_FileNotFound(t *testing.T) {
	_, err := ReadSitesCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
