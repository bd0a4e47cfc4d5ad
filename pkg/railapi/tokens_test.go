package railapi

import (
	"path/filepath"
	"testing"

	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "railtrack", "session.yaml"))

	session, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, session.Token)

	require.NoError(t, store.Save(Session{Token: "t", RefreshToken: "r", User: &ctdf.User{ID: "u1", Phone: "9876543210"}}))

	session, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "t", session.Token)
	assert.Equal(t, "r", session.RefreshToken)
	require.NotNil(t, session.User)
	assert.Equal(t, "9876543210", session.User.Phone)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	session, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, session.User)
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore(Session{Token: "t"})

	session, _ := store.Load()
	assert.Equal(t, "t", session.Token)

	require.NoError(t, store.Clear())
	session, _ = store.Load()
	assert.Empty(t, session.Token)
}
