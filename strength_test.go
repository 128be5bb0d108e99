package kiwi

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCreate(t *testing.T) {
	s := Create(1, 0, 0, 2)
	require.Greater(t, s, Strong)

	s = Create(0, 1, 0, 2)
	require.Less(t, s, Strong)
	require.Greater(t, s, Medium)

	s = Create(0, 0, 1, 2)
	require.Less(t, s, Medium)
	require.Greater(t, s, Weak)
}

func TestCreateClampsComponents(t *testing.T) {
	require.Equal(t, Required, Create(1000, 1000, 1000, 1))
	require.Equal(t, Required, Create(1, 1, 1, 1e12))
	require.Equal(t, Priority(0), Create(-1, -1, -1, 1))
}

func TestClip(t *testing.T) {
	require.Equal(t, Priority(0), Clip(-10))
	require.Equal(t, Required, Clip(1e18))
	require.Equal(t, Strong, Clip(Strong))
}

func TestNearZero(t *testing.T) {
	require.True(t, nearZero(1e-9))
	require.True(t, nearZero(-1e-9))
	require.False(t, nearZero(1.0))
	require.False(t, nearZero(-1.0))
}
