package commands

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

func TestDoctor_FixCreatesBackupRoot(t *testing.T) {
	ws := newWorkspace(t)
	defer func() { doctorFix = false }()

	var out bytes.Buffer
	err := runDoctorWithWriter(t.Context(), &out)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCodeFor(err))
	assert.Contains(t, out.String(), "does not exist yet")

	doctorFix = true
	out.Reset()
	require.NoError(t, runDoctorWithWriter(t.Context(), &out))
	assert.Contains(t, out.String(), "created")
	assert.DirExists(t, ws.root)
}

func TestDoctor_MissingSourceWarns(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, os.MkdirAll(ws.root, 0o755))
	require.NoError(t, os.Remove(ws.notes))

	var out bytes.Buffer
	err := runDoctorWithWriter(t.Context(), &out)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCodeFor(err))
	assert.Contains(t, out.String(), "notes:")
}
