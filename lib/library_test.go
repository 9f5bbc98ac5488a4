package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()

	library, err := NewLibrary(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { library.Close() })

	return library
}

func TestLibraryRotations(t *testing.T) {
	library := openTestLibrary(t)

	require.NoError(t, library.SetRotation("SOT-223-3_TabPin2", 180))
	require.NoError(t, library.SetRotation("R_0402_1005Metric", -90))

	rotations, err := library.Rotations()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"SOT-223-3_TabPin2": 180,
		"R_0402_1005Metric": -90,
	}, rotations)

	// latest value wins
	require.NoError(t, library.SetRotation("SOT-223-3_TabPin2", 90))
	rotations, err = library.Rotations()
	require.NoError(t, err)
	assert.Equal(t, 90.0, rotations["SOT-223-3_TabPin2"])
}

func TestLibraryAssociations(t *testing.T) {
	library := openTestLibrary(t)

	_, ok := library.Association("10k", "R_0402_1005Metric")
	assert.False(t, ok)

	require.NoError(t, library.Associate("10k", "R_0402_1005Metric", "C60490"))

	ref, ok := library.Association("10k", "R_0402_1005Metric")
	assert.True(t, ok)
	assert.Equal(t, "C60490", ref)

	// the pair is the key, not the value alone
	_, ok = library.Association("10k", "R_0603_1608Metric")
	assert.False(t, ok)
}

func TestLibraryPartMissing(t *testing.T) {
	library := openTestLibrary(t)

	_, ok := library.Part("C60490")
	assert.False(t, ok)
}

func TestLibraryReopen(t *testing.T) {
	root := t.TempDir()

	library, err := NewLibrary(root)
	require.NoError(t, err)
	require.NoError(t, library.SetRotation("SOT-23", 180))
	require.NoError(t, library.Close())

	library, err = NewLibrary(root)
	require.NoError(t, err)
	defer library.Close()

	rotations, err := library.Rotations()
	require.NoError(t, err)
	assert.Equal(t, 180.0, rotations["SOT-23"])
}
