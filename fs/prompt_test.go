package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/osokin/leadscout"
	"github.com/osokin/leadscout/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrompt(t *testing.T, dir, name, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0644))
}

func TestPrompts(t *testing.T) {
	t.Parallel()

	t.Run("get falls back to the default text", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePrompt(t, dir, "extraction_default.txt", "Find names in {input}")

		got, err := fs.NewPrompts(dir).Get("extraction")

		require.NoError(t, err)
		assert.Equal(t, "Find names in {input}", got)
	})

	t.Run("get prefers the customized text", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePrompt(t, dir, "extraction_default.txt", "default")
		writePrompt(t, dir, "extraction.txt", "customized")

		got, err := fs.NewPrompts(dir).Get("extraction")

		require.NoError(t, err)
		assert.Equal(t, "customized", got)
	})

	t.Run("get reports unknown prompts", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewPrompts(t.TempDir()).Get("nonsense")

		require.Error(t, err)
		assert.Equal(t, leadscout.ENOTFOUND, leadscout.ErrorCode(err))
	})

	t.Run("update persists and returns the new text", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := fs.NewPrompts(dir)

		got, err := p.Update("company", "Where does {person} work?")
		require.NoError(t, err)
		assert.Equal(t, "Where does {person} work?", got)

		read, err := p.Get("company")
		require.NoError(t, err)
		assert.Equal(t, "Where does {person} work?", read)
	})

	t.Run("reset restores the default over a customization", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePrompt(t, dir, "extraction_default.txt", "default")
		p := fs.NewPrompts(dir)
		_, err := p.Update("extraction", "customized")
		require.NoError(t, err)

		got, err := p.Reset("extraction")
		require.NoError(t, err)
		assert.Equal(t, "default", got)

		read, err := p.Get("extraction")
		require.NoError(t, err)
		assert.Equal(t, "default", read)
	})

	t.Run("reset without a default fails", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewPrompts(t.TempDir()).Reset("extraction")

		require.Error(t, err)
		assert.Equal(t, leadscout.ENOTFOUND, leadscout.ErrorCode(err))
	})

	t.Run("seeding skips existing defaults", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePrompt(t, dir, "extraction_default.txt", "edited default")
		p := fs.NewPrompts(dir)

		require.NoError(t, p.SeedDefaults(map[string]string{
			"extraction": "shipped default",
			"company":    "Where does {person} work?",
		}))

		got, err := p.Get("extraction")
		require.NoError(t, err)
		assert.Equal(t, "edited default", got)

		got, err = p.Get("company")
		require.NoError(t, err)
		assert.Equal(t, "Where does {person} work?", got)
	})
}

func TestCachedPrompts(t *testing.T) {
	t.Parallel()

	t.Run("caches reads", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePrompt(t, dir, "extraction_default.txt", "v1")
		c := fs.NewCachedPrompts(fs.NewPrompts(dir))

		got, err := c.Get("extraction")
		require.NoError(t, err)
		assert.Equal(t, "v1", got)

		// A change behind the cache's back is not observed.
		writePrompt(t, dir, "extraction_default.txt", "v2")
		got, err = c.Get("extraction")
		require.NoError(t, err)
		assert.Equal(t, "v1", got)
	})

	t.Run("update writes through and refreshes the cache", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePrompt(t, dir, "extraction_default.txt", "default")
		c := fs.NewCachedPrompts(fs.NewPrompts(dir))

		_, err := c.Get("extraction")
		require.NoError(t, err)

		got, err := c.Update("extraction", "customized")
		require.NoError(t, err)
		assert.Equal(t, "customized", got)

		got, err = c.Get("extraction")
		require.NoError(t, err)
		assert.Equal(t, "customized", got)
	})

	t.Run("reset refreshes the cache", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePrompt(t, dir, "extraction_default.txt", "default")
		c := fs.NewCachedPrompts(fs.NewPrompts(dir))

		_, err := c.Update("extraction", "customized")
		require.NoError(t, err)

		got, err := c.Reset("extraction")
		require.NoError(t, err)
		assert.Equal(t, "default", got)

		got, err = c.Get("extraction")
		require.NoError(t, err)
		assert.Equal(t, "default", got)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		c := fs.NewCachedPrompts(fs.NewPrompts(dir))

		_, err := c.Get("extraction")
		require.Error(t, err)

		writePrompt(t, dir, "extraction_default.txt", "late")
		got, err := c.Get("extraction")
		require.NoError(t, err)
		assert.Equal(t, "late", got)
	})
}
