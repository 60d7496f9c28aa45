package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetCreationArgs_Clone(t *testing.T) {
	orig := DatasetCreationArgs{
		Description: "desc",
		DeviceID:    "robot-1",
		Metadata:    map[string]any{"k": "v"},
		Name:        "mission-7",
		Tags:        []string{"a", "b"},
	}

	clone := orig.Clone()
	clone.Metadata["k"] = "changed"
	clone.Tags[0] = "z"

	assert.Equal(t, "v", orig.Metadata["k"])
	assert.Equal(t, []string{"a", "b"}, orig.Tags)
	assert.Equal(t, orig.Name, clone.Name)
	assert.Equal(t, orig.DeviceID, clone.DeviceID)
}

func TestDatasetCreationArgs_CloneKeepsNil(t *testing.T) {
	clone := DatasetCreationArgs{}.Clone()
	assert.Nil(t, clone.Metadata)
	assert.Nil(t, clone.Tags)
}

func TestDatasetCreationArgs_HasNameAndDevice(t *testing.T) {
	assert.False(t, DatasetCreationArgs{}.HasName())
	assert.False(t, DatasetCreationArgs{}.HasDevice())
	assert.True(t, DatasetCreationArgs{Name: "n"}.HasName())
	assert.True(t, DatasetCreationArgs{DeviceID: "d"}.HasDevice())
}

func TestFileImportArgs_Validate(t *testing.T) {
	t.Run("missing relative path", func(t *testing.T) {
		err := FileImportArgs{}.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "relative path")
	})

	t.Run("relative path set", func(t *testing.T) {
		assert.NoError(t, FileImportArgs{RelativePath: "x/1.csv"}.Validate())
	})
}

func TestFileImportArgs_Clone(t *testing.T) {
	orig := FileImportArgs{
		Metadata:     map[string]any{"request": "abc"},
		RelativePath: "a/b.txt",
		Tags:         []string{"t"},
	}

	clone := orig.Clone()
	clone.Metadata["request"] = "xyz"
	clone.Tags = append(clone.Tags[:0], "u")

	assert.Equal(t, "abc", orig.Metadata["request"])
	assert.Equal(t, []string{"t"}, orig.Tags)
	assert.Equal(t, "a/b.txt", clone.RelativePath)
}

func TestMergeTags(t *testing.T) {
	tests := []struct {
		name     string
		base     []string
		extra    []string
		expected []string
	}{
		{"no extra", []string{"a"}, nil, []string{"a"}},
		{"nil base", nil, []string{"x", "y"}, []string{"x", "y"}},
		{"dedupes", []string{"a", "b"}, []string{"b", "c", "a"}, []string{"a", "b", "c"}},
		{"drops empty", []string{""}, []string{"x", ""}, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MergeTags(tt.base, tt.extra...))
		})
	}
}

func TestMergeTags_DoesNotAliasBase(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "a"

	merged := MergeTags(base, "b")
	merged[0] = "z"

	assert.Equal(t, "a", base[0])
}
