package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/selection"
)

func allScope() selection.Scope {
	return selection.All()
}

func TestStatus(t *testing.T) {
	f := newFixture(t)

	st, err := f.eng.Status("cfg")
	require.NoError(t, err)
	assert.True(t, st.SourceExists)
	assert.Nil(t, st.Latest)
	assert.False(t, st.UpToDate())

	_, err = f.eng.Backup(t.Context(), "cfg")
	require.NoError(t, err)

	st, err = f.eng.Status("cfg")
	require.NoError(t, err)
	assert.Equal(t, 1, st.SnapshotCount)
	assert.True(t, st.Compared)
	assert.True(t, st.UpToDate())

	write(t, filepath.Join(f.src, "cfg", "settings.ini"), "v2")
	write(t, filepath.Join(f.src, "cfg", "added.ini"), "a")

	st, err = f.eng.Status("cfg")
	require.NoError(t, err)
	assert.False(t, st.UpToDate())
	assert.Equal(t, []string{"added.ini"}, st.Diff.Added)
	assert.Equal(t, []string{"settings.ini"}, st.Diff.Changed)

	_, err = f.eng.Status("ghost")
	assert.ErrorIs(t, err, errors.ErrInvalidSelection)
}

func TestStatus_FileItem(t *testing.T) {
	f := newFixture(t)
	_, err := f.eng.Backup(t.Context(), "notes")
	require.NoError(t, err)

	st, err := f.eng.Status("notes")
	require.NoError(t, err)
	assert.True(t, st.UpToDate())
}

func TestStatusAll(t *testing.T) {
	f := newFixture(t)

	all, err := f.eng.StatusAll()
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "saves", all[1].Item.Name)
	assert.False(t, all[1].SourceExists)
	assert.False(t, all[3].Item.Enabled)
}
