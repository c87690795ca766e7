package scratch_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/voicesketch/voicesketch-server/internal/scratch"
)

func TestAcquire_UniquePaths(t *testing.T) {
	t.Parallel()

	d := scratch.New()
	defer d.ReleaseAll()

	a := d.Acquire("converted.webm")
	b := d.Acquire("converted.webm")
	require.NotEqual(t, a, b)

	other := scratch.New()
	defer other.ReleaseAll()
	require.NotEqual(t, a, other.Acquire("converted.webm"))
}

func TestAcquire_KeepsExtension(t *testing.T) {
	t.Parallel()

	d := scratch.New()
	defer d.ReleaseAll()

	p := d.Acquire("voices/recorded_123.webm")
	require.Regexp(t, `recorded_123_.+\.webm$`, p)
}

func TestReleaseAll_RemovesCreatedFiles(t *testing.T) {
	t.Parallel()

	d := scratch.New()

	written := d.Acquire("a.png")
	require.NoError(t, os.WriteFile(written, []byte("x"), 0644))

	// acquired but never written — a step that failed early
	missing := d.Acquire("b.mp4")

	d.ReleaseAll()

	_, err := os.Stat(written)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(missing)
	require.True(t, os.IsNotExist(err))

	// second call is a no-op
	d.ReleaseAll()
}
