package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/tonegen/constants"
	"github.com/jsphweid/tonegen/model"
	"github.com/jsphweid/tonegen/render"
	"github.com/jsphweid/tonegen/sample"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort    int
	previewDelay time.Duration
	previewSecs  float64
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "listen port")
	serveCmd.Flags().DurationVar(&previewDelay, "preview-debounce", 500*time.Millisecond, "quiet time before a preview plays")
	serveCmd.Flags().Float64Var(&previewSecs, "preview-length", 8, "seconds of the piece a preview plays")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the composer over HTTP",
	Long:  `Serves /compose, /render and /preview over HTTP.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrInvalidConfig) {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func readRequest(r *http.Request) (model.ComposeRequest, error) {
	var input model.ComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return input, &model.ConfigError{Field: "body", Reason: err.Error()}
	}
	if input.Seed == 0 {
		input.Seed = time.Now().UnixNano()
	}
	return input, nil
}

func HandleCompose(w http.ResponseWriter, r *http.Request) {
	input, err := readRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := compose(input, logger)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c.response())
}

func HandleRender(w http.ResponseWriter, r *http.Request) {
	input, err := readRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := compose(input, logger)
	if err != nil {
		writeError(w, err)
		return
	}

	id := uuid.NewString()
	f, err := os.CreateTemp("", id+"-*.wav")
	if err != nil {
		writeError(w, err)
		return
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := render.WAV(path, c.sound, constants.GetSampleRate()); err != nil {
		writeError(w, err)
		return
	}
	out, err := os.Open(path)
	if err != nil {
		writeError(w, err)
		return
	}
	defer out.Close()

	logger.Info("rendered", zap.String("id", id), zap.Int64("seed", c.seed))
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("X-Render-Id", id)
	w.Header().Set("X-Seed", fmt.Sprint(c.seed))
	http.ServeContent(w, r, id+".wav", time.Now(), out)
}

// previewer plays only the last request of a burst and cuts off whatever
// preview is still playing.
type previewer struct {
	mu       sync.Mutex
	debounce func(func())
	cancel   context.CancelFunc
	play     func(ctx context.Context, c *composition) error
}

func newPreviewer(delay time.Duration) *previewer {
	return &previewer{debounce: debounce.New(delay), play: play}
}

func (p *previewer) submit(c *composition) {
	p.debounce(func() {
		p.mu.Lock()
		if p.cancel != nil {
			p.cancel()
		}
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		p.mu.Unlock()

		if err := p.play(ctx, c); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("preview failed", zap.Error(err))
		}
	})
}

func (p *previewer) HandlePreview(w http.ResponseWriter, r *http.Request) {
	input, err := readRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := compose(input, logger)
	if err != nil {
		writeError(w, err)
		return
	}
	c.tracks = sample.Excerpt(c.tracks, 0, previewSecs)
	if err := c.instrument(logger); err != nil {
		writeError(w, err)
		return
	}

	p.submit(c)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(c.response())
}

func NewRouter(p *previewer) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/compose", HandleCompose).Methods("POST")
	router.HandleFunc("/render", HandleRender).Methods("POST")
	router.HandleFunc("/preview", p.HandlePreview).Methods("POST")
	return cors.Default().Handler(router)
}

func serve() error {
	addr := fmt.Sprintf(":%v", servePort)
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, NewRouter(newPreviewer(previewDelay)))
}
