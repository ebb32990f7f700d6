package recording

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/coach/pkg/coach"
)

// sampleSession records t throughout, y for two steps, v from step two
// and an infinite value for e in the last step.
func sampleSession(t *testing.T) *coach.Session {
	t.Helper()

	s := coach.NewSession("Sample")
	require.NoError(t, s.SetMetadata("t", "s", "Time"))
	require.NoError(t, s.SetMetadata("y", "m", ""))
	require.NoError(t, s.Track(coach.V("t", 0.0), coach.V("y", 1.0)))
	require.NoError(t, s.Track(coach.V("t", 0.5), coach.V("y", 2.0), coach.V("v", 5)))
	require.NoError(t, s.Track(coach.V("t", 1.0), coach.V("v", 6), coach.V("e", math.Inf(1))))
	return s
}

// assertSeries compares series treating missing markers as equal.
func assertSeries(t *testing.T, want, got []float64, name string) {
	t.Helper()

	require.Len(t, got, len(want), name)
	for i := range want {
		if coach.IsMissing(want[i]) {
			assert.True(t, coach.IsMissing(got[i]), "%s[%d] = %v, want missing", name, i, got[i])
			continue
		}
		assert.Equal(t, want[i], got[i], "%s[%d]", name, i)
	}
}

func assertSameSeries(t *testing.T, want, got *coach.Session) {
	t.Helper()

	require.Equal(t, want.Names(), got.Names())
	assert.Equal(t, want.Len(), got.Len())
	for _, name := range want.Names() {
		w, err := want.Series(name)
		require.NoError(t, err)
		g, err := got.Series(name)
		require.NoError(t, err)
		assertSeries(t, w, g, name)
	}
}

func TestFromSession(t *testing.T) {
	s := sampleSession(t)
	r := FromSession(s)

	assert.Equal(t, Version, r.Version)
	assert.Equal(t, s.ID(), r.ID)
	assert.Equal(t, "Sample", r.Title)
	assert.Equal(t, 3, r.Steps)
	require.Len(t, r.Variables, 4)
	assert.Equal(t, "t", r.Variables[0].Name)
	assert.Equal(t, "e", r.Variables[3].Name)

	v, ok := r.Variable("v")
	require.True(t, ok)
	assert.True(t, coach.IsMissing(v.Values[0]))
	assert.Equal(t, 5.0, v.Values[1])

	assert.Equal(t, coach.Metadata{Unit: "m", Label: "y"}, r.Metadata["y"])
	assert.Equal(t, coach.Metadata{Unit: "s", Label: "Time"}, r.Metadata["t"])

	_, ok = r.Variable("missing")
	assert.False(t, ok)
}

func TestReplay(t *testing.T) {
	s := sampleSession(t)

	replayed, err := FromSession(s).Replay(coach.Config{})
	require.NoError(t, err)

	assertSameSeries(t, s, replayed)
	assert.Equal(t, "Sample", replayed.Title())
	assert.NotEqual(t, s.ID(), replayed.ID())
	assert.Equal(t, s.Metadata("t"), replayed.Metadata("t"))
	assert.Equal(t, s.Metadata("y"), replayed.Metadata("y"))
}

func TestReplayTitleOverride(t *testing.T) {
	replayed, err := FromSession(sampleSession(t)).Replay(coach.Config{Title: "Again"})
	require.NoError(t, err)
	assert.Equal(t, "Again", replayed.Title())
}

func TestReplayEmptySession(t *testing.T) {
	replayed, err := FromSession(coach.NewSession("")).Replay(coach.Config{})
	require.NoError(t, err)
	assert.Equal(t, 0, replayed.Len())
	assert.Empty(t, replayed.Names())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Recording)
	}{
		{"bad version", func(r *Recording) { r.Version = 99 }},
		{"negative steps", func(r *Recording) { r.Steps = -1 }},
		{"unnamed variable", func(r *Recording) { r.Variables[0].Name = "" }},
		{"duplicate variable", func(r *Recording) { r.Variables[1].Name = "t" }},
		{"short series", func(r *Recording) { r.Variables[0].Values = r.Variables[0].Values[:2] }},
		{"empty step", func(r *Recording) {
			r.Steps = 4
			for i := range r.Variables {
				r.Variables[i].Values = append(r.Variables[i].Values, coach.Missing())
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromSession(sampleSession(t))
			tt.modify(r)

			err := r.Validate()
			assert.ErrorIs(t, err, ErrInvalidRecording)

			_, err = r.Replay(coach.Config{})
			assert.ErrorIs(t, err, ErrInvalidRecording)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"run.json":      FormatJSON,
		"run.YAML":      FormatYAML,
		"dir/run.yml":   FormatYAML,
		"run.csv":       FormatCSV,
		"/tmp/x.coachz": FormatPacked,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("run.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := sampleSession(t)
	dir := t.TempDir()

	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(dir, "nested", "run."+string(f))
			require.NoError(t, Save(path, FromSession(s)))

			r, err := Load(path)
			require.NoError(t, err)

			replayed, err := r.Replay(coach.Config{})
			require.NoError(t, err)
			assertSameSeries(t, s, replayed)

			if f != FormatCSV {
				assert.Equal(t, "Sample", r.Title)
				assert.Equal(t, s.ID(), r.ID)
				assert.Equal(t, s.Metadata("t"), replayed.Metadata("t"))
			}
		})
	}
}

func TestJSONEncoding(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FromSession(sampleSession(t)), FormatJSON))

	out := buf.String()
	assert.Contains(t, out, `"+Inf"`)
	assert.Contains(t, out, "null")
	assert.NoError(t, ValidateJSON(buf.Bytes()))
}

func TestCSVEncoding(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FromSession(sampleSession(t)), FormatCSV))

	want := "step,t,y,v,e\n" +
		"0,0,1,,\n" +
		"1,0.5,2,5,\n" +
		"2,1,,6,+Inf\n"
	assert.Equal(t, want, buf.String())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json schema", `{"version": 1, "steps": "three", "variables": []}`, FormatJSON},
		{"json bad sample", `{"version": 1, "steps": 1, "variables": [{"name": "x", "values": ["big"]}]}`, FormatJSON},
		{"json unknown field", `{"version": 1, "steps": 0, "variables": [], "extra": true}`, FormatJSON},
		{"json length mismatch", `{"version": 1, "steps": 2, "variables": [{"name": "x", "values": [1]}]}`, FormatJSON},
		{"yaml", "version: [", FormatYAML},
		{"csv header", "time,x\n0,1\n", FormatCSV},
		{"csv step", "step,x\n5,1\n", FormatCSV},
		{"csv number", "step,x\n0,abc\n", FormatCSV},
		{"packed magic", `{"version": 1}`, FormatPacked},
		{"packed data", "COACHZ1\n" + `{"version": 1, "steps": 2, "variables": [{"name": "x", "data": null}]}`, FormatPacked},
		{"unknown format", "", Format("xml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestDecodePackedHugeStepCount(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(packedMagic)
	require.NoError(t, json.NewEncoder(&buf).Encode(packedRecording{
		Version:   Version,
		Steps:     1 << 61,
		Variables: []packedVariable{{Name: "x", Data: zeroFrame(t)}},
	}))

	var err error
	assert.NotPanics(t, func() {
		_, err = Decode(buf.Bytes(), FormatPacked)
	})
	assert.Error(t, err)
}

func TestSchemaErrorsListViolations(t *testing.T) {
	err := ValidateJSON([]byte(`{"version": 0, "steps": -1, "variables": []}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRecording)

	var se SchemaErrors
	require.ErrorAs(t, err, &se)
	assert.GreaterOrEqual(t, len(se), 2)
	assert.Contains(t, err.Error(), "/version")
	assert.Contains(t, err.Error(), "/steps")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
