package version

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionStrings(t *testing.T) {
	require.NotEmpty(t, Short())
	assert.Contains(t, Full(), Short())
}

func TestVersionCommand(t *testing.T) {
	root := &cobra.Command{Use: "net64-update"}
	AttachCobraVersionCommand(root)

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, Full()+"\n", out.String())
}

func TestDevelopmentBuild(t *testing.T) {
	defer func(v string) { Version = v }(Version)

	for _, v := range []string{"dev", "", "nightly"} {
		Version = v
		assert.False(t, Released(), v)
		assert.Empty(t, Current(), v)
		assert.Contains(t, Full(), "(development build)")
	}
}

func TestReleasedBuild(t *testing.T) {
	defer func(v string) { Version = v }(Version)

	for _, v := range []string{"v2.1.0", "2.1.0-beta", "release-3"} {
		Version = v
		assert.True(t, Released(), v)
		assert.Equal(t, v, Current())
		assert.NotContains(t, Full(), "development")
	}
}
