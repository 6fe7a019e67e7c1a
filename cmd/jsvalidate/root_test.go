package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsvalidation/pkg/jsvalidation"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCompileCmd(t *testing.T) {
	t.Parallel()

	t.Run("view data", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "compile", "register", "--forms", "testdata/forms.yaml")
		require.NoError(t, err)

		var data jsvalidation.ViewData
		require.NoError(t, json.Unmarshal([]byte(out), &data))
		assert.Equal(t, "#register", data.Selector)
		assert.True(t, data.Remote)
		assert.Contains(t, data.Rules["email"], jsvalidation.RemoteRule)
		assert.Contains(t, data.Rules, "password_confirmation")
		assert.Empty(t, data.Messages)
	})

	t.Run("without remote rules", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "compile", "register", "--forms", "testdata/forms.yaml", "--remote=false")
		require.NoError(t, err)

		var data jsvalidation.ViewData
		require.NoError(t, json.Unmarshal([]byte(out), &data))
		assert.False(t, data.Remote)
		assert.NotContains(t, data.Rules["email"], jsvalidation.RemoteRule)
	})

	t.Run("opted out attribute", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "compile", "newsletter", "--forms", "testdata/forms.yaml")
		require.NoError(t, err)

		var data jsvalidation.ViewData
		require.NoError(t, json.Unmarshal([]byte(out), &data))
		assert.Contains(t, data.Rules, "email")
		assert.NotContains(t, data.Rules, "topics")
	})

	t.Run("script", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "compile", "register", "--forms", "testdata/forms.yaml", "--script")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "<script>"))
		assert.Contains(t, out, `"#register"`)
	})

	t.Run("unknown form", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "compile", "missing", "--forms", "testdata/forms.yaml")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "compile", "register", "--forms", "testdata/nope.yaml")
		require.Error(t, err)
	})
}

func TestFormsCmd(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "forms", "--forms", "testdata/forms.yaml")
	require.NoError(t, err)
	assert.Equal(t, "newsletter\t2 attributes\nregister\t4 attributes\n", out)
}
