package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetEnvInt(t *testing.T) {
	require.Equal(t, 7, getEnvInt("ARCADE_TEST_UNSET_INT", 7))

	os.Setenv("ARCADE_TEST_INT", "42")
	defer os.Unsetenv("ARCADE_TEST_INT")
	require.Equal(t, 42, getEnvInt("ARCADE_TEST_INT", 7))

	os.Setenv("ARCADE_TEST_INT", "nope")
	require.Equal(t, 7, getEnvInt("ARCADE_TEST_INT", 7))
}

func TestGetEnvDuration(t *testing.T) {
	require.Equal(t, time.Second, getEnvDuration("ARCADE_TEST_UNSET_DUR", time.Second))

	os.Setenv("ARCADE_TEST_DUR", "250ms")
	defer os.Unsetenv("ARCADE_TEST_DUR")
	require.Equal(t, 250*time.Millisecond, getEnvDuration("ARCADE_TEST_DUR", time.Second))

	os.Setenv("ARCADE_TEST_DUR", "-1s")
	require.Equal(t, time.Second, getEnvDuration("ARCADE_TEST_DUR", time.Second))
}

func TestGetEnvString(t *testing.T) {
	require.Equal(t, "x", getEnvString("ARCADE_TEST_UNSET_STR", "x"))

	os.Setenv("ARCADE_TEST_STR", "y")
	defer os.Unsetenv("ARCADE_TEST_STR")
	require.Equal(t, "y", getEnvString("ARCADE_TEST_STR", "x"))
}
