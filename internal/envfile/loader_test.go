package envfile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/useenv/internal/model"
)

// newTestLoader returns a Loader over an in-memory filesystem seeded
// with files.
func newTestLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return &Loader{FS: fs}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{".env", FormatDotenv},
		{"prod.env", FormatDotenv},
		{"vars", FormatDotenv},
		{"vars.yaml", FormatYAML},
		{"vars.YML", FormatYAML},
		{"vars.json", FormatJSON},
		{"vars.jsonc", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path))
		})
	}
}

func TestLoad_Dotenv(t *testing.T) {
	l := newTestLoader(t, map[string]string{
		"/work/.env": "# comment\nZED=last\nexport ALPHA=one\nQUOTED=\"two words\"\n",
	})

	vars, err := l.Load("/work/.env")
	require.NoError(t, err)
	assert.Equal(t, []model.Assignment{
		{Name: "ALPHA", Value: "one"},
		{Name: "QUOTED", Value: "two words"},
		{Name: "ZED", Value: "last"},
	}, vars)
}

// TestLoad_YAML checks that document order is kept and scalars are
// passed through as written.
func TestLoad_YAML(t *testing.T) {
	l := newTestLoader(t, map[string]string{
		"/work/vars.yaml": "ZED: last\nPORT: 8080\nDEBUG: true\nEMPTY:\n",
	})

	vars, err := l.Load("/work/vars.yaml")
	require.NoError(t, err)
	assert.Equal(t, []model.Assignment{
		{Name: "ZED", Value: "last"},
		{Name: "PORT", Value: "8080"},
		{Name: "DEBUG", Value: "true"},
		{Name: "EMPTY", Value: ""},
	}, vars)
}

func TestLoad_YAMLRejectsNested(t *testing.T) {
	l := newTestLoader(t, map[string]string{
		"/work/nested.yml": "DB:\n  host: localhost\n",
		"/work/list.yml":   "- a\n- b\n",
	})

	_, err := l.Load("/work/nested.yml")
	assert.ErrorContains(t, err, "must be a scalar")

	_, err = l.Load("/work/list.yml")
	assert.ErrorContains(t, err, "mapping")
}

func TestLoad_EmptyYAML(t *testing.T) {
	l := newTestLoader(t, map[string]string{"/work/empty.yaml": ""})

	vars, err := l.Load("/work/empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, vars)
}

// TestLoad_JSONC verifies comments and trailing commas are accepted and
// non-string scalars are formatted.
func TestLoad_JSONC(t *testing.T) {
	l := newTestLoader(t, map[string]string{
		"/work/vars.jsonc": `{
  // service settings
  "PORT": 8080,
  "NAME": "api",
  "ENABLED": false,
  "UNSET": null,
}`,
	})

	vars, err := l.Load("/work/vars.jsonc")
	require.NoError(t, err)
	assert.Equal(t, []model.Assignment{
		{Name: "ENABLED", Value: "false"},
		{Name: "NAME", Value: "api"},
		{Name: "PORT", Value: "8080"},
		{Name: "UNSET", Value: ""},
	}, vars)
}

func TestLoad_JSONRejectsObjects(t *testing.T) {
	l := newTestLoader(t, map[string]string{"/work/bad.json": `{"A": {"b": 1}}`})

	_, err := l.Load("/work/bad.json")
	assert.Error(t, err)
}

func TestLoad_InvalidName(t *testing.T) {
	l := newTestLoader(t, map[string]string{"/work/bad.yaml": "\"\": value\n"})

	_, err := l.Load("/work/bad.yaml")
	assert.ErrorContains(t, err, "must not be empty")
}

func TestLoad_MissingFile(t *testing.T) {
	l := newTestLoader(t, nil)

	_, err := l.Load("/work/missing.env")
	assert.ErrorContains(t, err, "failed to read env file")
}

// TestLoadAll concatenates files in the order given.
func TestLoadAll(t *testing.T) {
	l := newTestLoader(t, map[string]string{
		"/a.env":  "A=1\n",
		"/b.yaml": "A: 2\nB: 3\n",
	})

	vars, err := l.LoadAll([]string{"/a.env", "/b.yaml"})
	require.NoError(t, err)
	assert.Equal(t, []model.Assignment{
		{Name: "A", Value: "1"},
		{Name: "A", Value: "2"},
		{Name: "B", Value: "3"},
	}, vars)

	_, err = l.LoadAll([]string{"/a.env", "/missing"})
	assert.Error(t, err)
}
