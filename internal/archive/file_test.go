package archive

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFacts(t *testing.T, path string) []Fact {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var facts []Fact
	require.NoError(t, json.Unmarshal(data, &facts))
	return facts
}

func TestFile_AddToFreshArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.json")
	a := NewFile(path)

	added, err := a.Add("A is true.", "")
	require.NoError(t, err)
	assert.True(t, added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"text": "A is true."}]`, string(data))
}

func TestFile_DuplicateLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"text": "X"}]`), 0644))
	before, err := os.Stat(path)
	require.NoError(t, err)

	added, err := NewFile(path).Add("X", "")
	require.NoError(t, err)
	assert.False(t, added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"text": "X"}]`, string(data))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestFile_MixedBatchKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.json")
	a := NewFile(path)

	for _, text := range []string{"A", "B", "A"} {
		_, err := a.Add(text, "")
		require.NoError(t, err)
	}

	assert.Equal(t, []Fact{{Text: "A"}, {Text: "B"}}, readFacts(t, path))
}

func TestFile_DedupIsIdempotent(t *testing.T) {
	a := NewFile(filepath.Join(t.TempDir(), "facts.json"))

	first, err := a.Add("Octopuses have three hearts.", "https://example.com")
	require.NoError(t, err)
	second, err := a.Add("Octopuses have three hearts.", "https://example.com")
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)

	facts, err := a.Load()
	require.NoError(t, err)
	assert.Len(t, facts, 1)
}

func TestFile_DedupIsCaseSensitive(t *testing.T) {
	a := NewFile(filepath.Join(t.TempDir(), "facts.json"))

	_, err := a.Add("Fact", "")
	require.NoError(t, err)
	added, err := a.Add("fact", "")
	require.NoError(t, err)
	assert.True(t, added)
}

func TestFile_EmptyTextIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.json")

	added, err := NewFile(path).Add("", "src")
	require.NoError(t, err)
	assert.False(t, added)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFile_RoundTrip(t *testing.T) {
	a := NewFile(filepath.Join(t.TempDir(), "nested", "dir", "facts.json"))
	facts := []Fact{
		{Text: "First", Source: "https://one.example"},
		{Text: "Second"},
		{Text: "Le cœur d'une crevette est dans sa tête.", Source: "https://two.example"},
		{Text: "<b>Tags & ampersands</b>"},
	}

	require.NoError(t, a.Save(facts))
	loaded, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, facts, loaded)
}

func TestFile_SaveIsPrettyAndUnescaped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.json")
	require.NoError(t, NewFile(path).Save([]Fact{{Text: "Ünïcödé & <html>", Source: "s"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "[\n    {\n        \"text\": \"Ünïcödé & <html>\",\n        \"source\": \"s\"\n    }\n]\n"
	assert.Equal(t, want, string(data))
}

func TestFile_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFile(filepath.Join(dir, "facts.json")).Save([]Fact{{Text: "x"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "facts.json", entries[0].Name())
}

func TestFile_LoadMissingFile(t *testing.T) {
	facts, err := NewFile(filepath.Join(t.TempDir(), "missing.json")).Load()
	require.NoError(t, err)
	assert.NotNil(t, facts)
	assert.Empty(t, facts)
}

func TestFile_LoadCorruptedResets(t *testing.T) {
	for name, content := range map[string]string{
		"garbage":  "this is { not json",
		"empty":    "",
		"truncate": `[{"text": "A"`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "facts.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			facts, err := NewFile(path).Load()
			require.NoError(t, err)
			assert.Empty(t, facts)
		})
	}
}

func TestFile_LoadCorruptedFailPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))

	a := NewFile(path, WithCorruptPolicy(PolicyFail))
	_, err := a.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupted))

	added, err := a.Add("new", "")
	assert.False(t, added)
	assert.ErrorIs(t, err, ErrCorrupted)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "nope", string(data))
}

func TestFile_WrongShapeIsNeverOverwritten(t *testing.T) {
	for name, content := range map[string]string{
		"ill-typed record": `[{"text":"A","id":"42"},{"text":7},{"text":"C"}]`,
		"object":           `{"text": "not an array"}`,
		"string":           `"just a string"`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "facts.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			a := NewFile(path)
			_, err := a.Load()
			assert.ErrorIs(t, err, ErrCorrupted)

			added, err := a.Add("B", "")
			assert.False(t, added)
			assert.ErrorIs(t, err, ErrCorrupted)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, content, string(data))
		})
	}
}

func TestFile_AddOverCorruptedFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.json")
	require.NoError(t, os.WriteFile(path, []byte("]["), 0644))

	added, err := NewFile(path).Add("fresh", "")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []Fact{{Text: "fresh"}}, readFacts(t, path))
}

func TestFile_SaveErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0644))

	a := NewFile(filepath.Join(blocker, "facts.json"))
	added, err := a.Add("cannot persist", "")
	assert.False(t, added)
	assert.Error(t, err)
}
