package http_server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dchest/uniuri"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"hexlify/config"
	"hexlify/encoding"
	"hexlify/hex"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const shutdownTimeout = time.Second * 5

type decodeFailure struct {
	Error   string `json:"error"`
	Decoded string `json:"decoded"`
}

// Handler serves POST /encode and POST /decode. Bodies are converted as a
// whole before the status line is sent, so a decode failure can still be
// answered with 422 and the partial output.
type Handler struct {
	cfg *config.Config
	log *logrus.Logger
}

func NewHandler(cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{cfg: cfg, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uniuri.NewLen(12)
	w.Header().Set("X-Request-Id", requestID)

	logr := h.log.WithFields(logrus.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"remote_addr": r.RemoteAddr,
		"request_id":  requestID,
	})
	logr.Info("Received request")
	startedAt := time.Now()
	defer func() {
		logr.WithField("duration", time.Since(startedAt).Round(time.Millisecond)).Info("Request finished")
	}()

	var decode bool
	switch r.URL.Path {
	case "/encode":
	case "/decode":
		decode = true
	default:
		logr.Warn("Unknown path")
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	codec := hex.Codec{IgnoreGarbage: h.cfg.IgnoreGarbage}
	if v := r.URL.Query().Get("ignore_garbage"); v != "" {
		ignoreGarbage, err := strconv.ParseBool(v)
		if err != nil {
			logr.WithError(err).Warn("Bad ignore_garbage")
			http.Error(w, "Bad ignore_garbage value", http.StatusBadRequest)
			return
		}
		codec.IgnoreGarbage = ignoreGarbage
	}

	reqEncoding := strings.ToLower(r.Header.Get("Content-Encoding"))
	if reqEncoding == "identity" {
		reqEncoding = ""
	}
	container, err := encoding.Lookup(reqEncoding)
	if err != nil {
		logr.WithError(err).Warn("Unsupported request encoding")
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}

	var stages []encoding.Stage
	if !encoding.IsPlain(reqEncoding) {
		stages = append(stages, container.Decode)
	}
	if decode {
		stages = append(stages, codec.Decode)
	} else {
		stages = append(stages, codec.Encode)
	}

	var body bytes.Buffer
	err = encoding.Chain(&body, r.Body, stages...)
	if errors.Is(err, hex.ErrNotHex) || errors.Is(err, hex.ErrOddLength) {
		logr.WithError(err).WithField("decoded_bytes", body.Len()).Warn("Error decoding body")
		var partial strings.Builder
		_ = hex.Encode(&partial, &body)
		writeJSON(w, http.StatusUnprocessableEntity, decodeFailure{Error: err.Error(), Decoded: partial.String()})
		return
	}
	if err != nil {
		logr.WithError(err).Error("Error reading body")
		http.Error(w, "Error reading body", http.StatusBadRequest)
		return
	}

	if decode {
		w.Header().Set("Content-Type", "application/octet-stream")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=us-ascii")
	}
	w.Header().Add("Vary", "Accept-Encoding")
	retEncoding := encoding.Negotiate(r.Header.Get("Accept-Encoding"))
	if retEncoding != "" {
		w.Header().Set("Content-Encoding", retEncoding)
	} else {
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	}
	w.WriteHeader(http.StatusOK)
	if err := encoding.Encode(w, &body, retEncoding); err != nil {
		logr.WithError(err).Error("Error encoding body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StartServer listens on cfg.Listen until ctx is done, then shuts down
// gracefully.
func StartServer(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           NewHandler(cfg, log),
		ReadHeaderTimeout: time.Second * 5,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Error shutting down server")
		}
	}()

	log.WithField("listen", cfg.Listen).Info("Starting server")
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}
