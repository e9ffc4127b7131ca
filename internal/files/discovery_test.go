package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgcetcli/internal/shared/testutil"
)

func createFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("Year,Course\n"), 0644))
	}
}

func TestIsDataset(t *testing.T) {
	discovery := NewDiscovery([]string{".csv", ".XLSX"}, nil)

	tests := []struct {
		name string
		want bool
	}{
		{"seats.csv", true},
		{"SEATS.CSV", true},
		{"seats.xlsx", true},
		{"seats.xls", false},
		{"seats.pdf", false},
		{"csv", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, discovery.IsDataset(tt.name))
		})
	}
}

func TestFindDatasets(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "only datasets",
			files:    []string{"b_2023.xlsx", "a_2022.csv"},
			expected: []string{"a_2022.csv", "b_2023.xlsx"},
		},
		{
			name:     "mixed file types",
			files:    []string{"seats.csv", "notes.txt", "scan.pdf", "old.xls"},
			expected: []string{"seats.csv"},
		},
		{
			name:     "empty directory",
			files:    []string{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFiles(t, dir, tt.files...)
			require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0755))

			discovery := NewDiscovery([]string{".csv", ".xlsx"}, nil)
			files, err := discovery.FindDatasets(dir)
			require.NoError(t, err)

			var names []string
			for _, f := range files {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
				assert.Positive(t, f.Size)
				assert.False(t, f.ModTime.IsZero())
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindDatasetsMissingDirectory(t *testing.T) {
	discovery := NewDiscovery([]string{".csv"}, nil)
	_, err := discovery.FindDatasets(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read directory")
}

func TestFindFilesByPattern(t *testing.T) {
	dir := t.TempDir()
	createFiles(t, dir, "pgcet_2022.csv", "pgcet_2023.csv", "pgcet_notes.txt", "other.csv")

	discovery := NewDiscovery([]string{".csv"}, nil)

	files, err := discovery.FindFilesByPattern(filepath.Join(dir, "pgcet_*"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "pgcet_2022.csv", files[0].Name)
	assert.Equal(t, "pgcet_2023.csv", files[1].Name)

	_, err = discovery.FindFilesByPattern("[")
	assert.Error(t, err)
}

func TestExpand(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	root := t.TempDir()
	data := filepath.Join(root, "data")
	empty := filepath.Join(root, "empty")
	createFiles(t, data, "2023.csv", "2022.xlsx", "readme.txt")
	createFiles(t, empty)

	discovery := NewDiscovery([]string{".csv", ".xlsx"}, logger)

	paths, err := discovery.Expand([]string{
		data,
		filepath.Join(data, "*.csv"),
		empty,
		"missing.csv",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(data, "2022.xlsx"),
		filepath.Join(data, "2023.csv"),
		"missing.csv",
	}, paths)
	assert.True(t, handler.ContainsMessage("No datasets found in directory"))
	assert.True(t, handler.ContainsAttr("directory", empty))
}

func TestExpandUnmatchedPattern(t *testing.T) {
	discovery := NewDiscovery([]string{".csv"}, nil)

	_, err := discovery.Expand([]string{filepath.Join(t.TempDir(), "*.csv")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no datasets match")
}
