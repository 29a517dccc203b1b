//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2/wav"
	"github.com/jsphweid/tonegen/cmd"
	"github.com/jsphweid/tonegen/midi"
	"github.com/jsphweid/tonegen/model"
	"github.com/stretchr/testify/assert"
)

var outDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tonegen-e2e")
	if err != nil {
		panic(err.Error())
	}
	outDir = dir
	os.Setenv("SAMPLE_RATE", "22050")

	exitVal := m.Run()

	os.RemoveAll(dir)
	os.Exit(exitVal)
}

func createComposeReqBody(req model.ComposeRequest) io.Reader {
	data, err := json.Marshal(req)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

var piece = model.ComposeRequest{Seed: 3, Tonic: "G", BPM: 100, Phrases: 1, MeasuresPerPhrase: 4}

func composeE2E(t *testing.T) model.ComposeResponse {
	w := httptest.NewRecorder()
	cmd.HandleCompose(w, httptest.NewRequest(http.MethodPost, "/compose", createComposeReqBody(piece)))
	assert.Equal(t, 200, w.Code)

	var res model.ComposeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		panic(err.Error())
	}
	return res
}

func TestRenderMatchesComposedDuration(t *testing.T) {
	composed := composeE2E(t)

	w := httptest.NewRecorder()
	cmd.HandleRender(w, httptest.NewRequest(http.MethodPost, "/render", createComposeReqBody(piece)))
	assert := assert.New(t)
	assert.Equal(200, w.Code)

	streamer, format, err := wav.Decode(bytes.NewReader(w.Body.Bytes()))
	assert.NoError(err)
	assert.Equal(2, format.NumChannels)
	seconds := float64(streamer.Len()) / float64(format.SampleRate)
	assert.InDelta(composed.Duration, seconds, 0.01)
}

func TestComposeCommandWritesFiles(t *testing.T) {
	composed := composeE2E(t)
	err := cmd.Run([]string{
		"compose", "--seed", "3", "--key", "G", "--bpm", "100",
		"--phrases", "1", "--measures", "4",
		"--out", outDir, "--name", "piece",
	})
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, "piece.wav"))
	assert.NoError(t, err)

	tracks, err := midi.ReadTones(filepath.Join(outDir, "piece.mid"))
	assert.NoError(t, err)
	assert.Len(t, tracks, len(composed.Tracks))
	for i, track := range tracks {
		assert.Equal(t, composed.Tracks[i].Name, track.Name)
		assert.Len(t, track.Tones, len(composed.Tracks[i].Tones))
	}
}
