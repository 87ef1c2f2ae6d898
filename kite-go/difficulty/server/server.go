package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kiteco/difficulty/kite-go/difficulty/corpus"
	"github.com/kiteco/difficulty/kite-go/difficulty/inference"
	"github.com/kiteco/difficulty/kite-go/web/midware"
	"github.com/kiteco/difficulty/kite-go/web/webutils"
	"github.com/kiteco/difficulty/kite-golib/kitelog"
	"go.uber.org/zap"
)

// DefaultPort is the port the server listens on unless configured otherwise.
const DefaultPort = 8001

// maxBodyBytes bounds the size of a predict request.
const maxBodyBytes = 1 << 20

var statusMap = webutils.StatusCodeMap{
	inference.CodeEmptyInput:        http.StatusBadRequest,
	inference.CodeModelsUnavailable: http.StatusServiceUnavailable,
	inference.CodeInvalidScore:      http.StatusInternalServerError,
}

// Server exposes an inference service over HTTP. It starts even when no
// bundle could be loaded, in which case predictions fail with 503.
type Server struct {
	service *inference.Service
	logger  *zap.Logger
}

// New returns a server for service, which may be nil.
func New(service *inference.Service, logger *zap.Logger) *Server {
	return &Server{
		service: service,
		logger:  kitelog.OrNop(logger).With(kitelog.Operation("predict")),
	}
}

// Handler returns the routes wrapped with the default middleware.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/predict", s.handlePredict).Methods("POST")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	return midware.Wrap(r, s.logger)
}

// ListenAndServe serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", zap.String("addr", addr), zap.Bool("models_loaded", s.service != nil))
	return srv.ListenAndServe()
}

type predictRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	InputDescription  string `json:"input_description"`
	OutputDescription string `json:"output_description"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req predictRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			webutils.ReportBadRequest(w, "invalid JSON body: %v", err)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			webutils.ReportBadRequest(w, "invalid form body: %v", err)
			return
		}
		req = predictRequest{
			Title:             r.PostFormValue("title"),
			Description:       r.PostFormValue("description"),
			InputDescription:  r.PostFormValue("input_description"),
			OutputDescription: r.PostFormValue("output_description"),
		}
	}

	p, err := s.service.Score(corpus.Problem{
		Title:             req.Title,
		Description:       req.Description,
		InputDescription:  req.InputDescription,
		OutputDescription: req.OutputDescription,
	})
	if err != nil {
		webutils.ErrorResponse(w, r, err, statusMap, s.logger)
		return
	}
	webutils.WriteJSON(w, http.StatusOK, p)
}

type healthResponse struct {
	ModelsLoaded bool   `json:"models_loaded"`
	RunID        string `json:"run_id,omitempty"`
	Synthetic    bool   `json:"synthetic,omitempty"`
	Normalizer   string `json:"normalizer,omitempty"`
	Thresholds   string `json:"thresholds,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.service == nil {
		webutils.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{})
		return
	}
	m := s.service.Manifest()
	webutils.WriteJSON(w, http.StatusOK, healthResponse{
		ModelsLoaded: true,
		RunID:        m.RunID,
		Synthetic:    m.Synthetic,
		Normalizer:   m.Normalizer,
		Thresholds:   s.service.Thresholds().Version,
	})
}
