package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/simplecsv"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootStdinToStdout(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, `[{"name":"test","age":20}]`, "--no-bom")
	require.NoError(t, err)
	assert.Equal(t, "\"test\",20\r\n", out)
}

func TestRootFlags(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin string
		args  []string
		want  string
	}{
		"separator and quote": {
			stdin: `[{"name":"test","age":20}]`,
			args:  []string{"--no-bom", "--separator", ";", "--quote", ""},
			want:  "test;20\r\n",
		},
		"labels": {
			stdin: `[{"name":"test","age":20}]`,
			args:  []string{"--no-bom", "--labels", "age=Age,name=Name"},
			want:  "Age,Name\r\n20,\"test\"\r\n",
		},
		"headers": {
			stdin: `[{"name":"test","age":20}]`,
			args:  []string{"--no-bom", "--headers", "age,name", "--use-header"},
			want:  "age,name\r\n20,\"test\"\r\n",
		},
		"title": {
			stdin: `[{"name":"test"}]`,
			args:  []string{"--no-bom", "--show-title", "--title", "Staff"},
			want:  "Staff\r\n\n\"test\"\r\n",
		},
		"null literal": {
			stdin: `[{"a":null}]`,
			args:  []string{"--no-bom", "--null-literal"},
			want:  "null\r\n",
		},
		"yaml input": {
			stdin: "- name: test\n  age: 20\n",
			args:  []string{"--no-bom", "-i", "yaml"},
			want:  "\"test\",20\r\n",
		},
		"empty input": {
			stdin: `[]`,
			args:  nil,
			want:  "",
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, _, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRootEmptyInputWarns(t *testing.T) {
	t.Parallel()
	_, errOut, err := execute(t, `[]`)
	require.NoError(t, err)
	assert.Contains(t, errOut, "no data to generate CSV")
}

func TestRootVerbose(t *testing.T) {
	t.Parallel()
	_, errOut, err := execute(t, `[{"a":1}]`, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, errOut, "encoded document")

	_, errOut, err = execute(t, `[{"a":1}]`)
	require.NoError(t, err)
	assert.NotContains(t, errOut, "encoded document")
}

func TestRootConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "csv.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("useBom: false\nfieldSeparator: \";\"\nquoteStrings: \"\"\n"), 0o600))

	out, _, err := execute(t, `[{"name":"test","age":20}]`, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "test;20\r\n", out)

	// Flags override the file.
	out, _, err = execute(t, `[{"name":"test","age":20}]`, "--config", cfg, "--separator", "|")
	require.NoError(t, err)
	assert.Equal(t, "test|20\r\n", out)
}

func TestRootInputFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(in, []byte(`[{"v":1.5}]`), 0o600))

	out, _, err := execute(t, "", in, "--no-bom", "--decimal", ",")
	require.NoError(t, err)
	assert.Equal(t, "1,5\r\n", out)
}

func TestRootOutDir(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "reports")
	out, _, err := execute(t, `[{"name":"test"}]`, "--out-dir", dir, "--filename", "My Report", "--no-bom")
	require.NoError(t, err)

	path := filepath.Join(dir, "My_Report.csv")
	assert.Equal(t, "wrote "+path+"\n", out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\"test\"\r\n", string(data))
}

func TestRootErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin string
		args  []string
		want  error
	}{
		"not an array":  {stdin: `{"a":1}`, want: simplecsv.ErrNotSequence},
		"invalid json":  {stdin: `[`, want: simplecsv.ErrInvalidJSON},
		"bad separator": {stdin: `[]`, args: []string{"--separator", ";;"}, want: simplecsv.ErrInvalidOption},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := execute(t, tt.stdin, tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRootUnknownInputFormat(t *testing.T) {
	t.Parallel()
	_, _, err := execute(t, `[]`, "--input-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestParseLabels(t *testing.T) {
	t.Parallel()
	labels, err := parseLabels([]string{"name=Name", "age=Age of person", "empty="})
	require.NoError(t, err)
	assert.Equal(t, simplecsv.Labels{
		{Key: "name", Value: "Name"},
		{Key: "age", Value: "Age of person"},
		{Key: "empty", Value: ""},
	}, labels)

	_, err = parseLabels([]string{"missing"})
	require.Error(t, err)
	_, err = parseLabels([]string{"=Label"})
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "simplecsv "+Version)
}
