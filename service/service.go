// Package service implements the development line search server: it
// answers ping and search queries, and renders search results as HTML.
package service

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/NYTimes/gziphandler"
	"github.com/cbsinteractive/linesearch/api"
	"github.com/cbsinteractive/linesearch/db"
	"github.com/cbsinteractive/linesearch/service/exceptions"
	"github.com/cbsinteractive/linesearch/timecode"
	ranges "github.com/cbsinteractive/pkg/timecode"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

var ErrStorage = errors.New("storage error")

// Server answers queries from the rows in Repo. If Repo holds no
// productions, rows are generated.
type Server struct {
	Repo db.Repository
	Fps  timecode.Fps

	logger      logrus.FieldLogger
	errReporter exceptions.Reporter
}

// New returns a server. A nil logger or reporter is replaced by the
// standard logger and a no-op reporter.
func New(repo db.Repository, fps timecode.Fps, logger logrus.FieldLogger, reporter exceptions.Reporter) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if reporter == nil {
		reporter = &exceptions.NoopReporter{}
	}
	return &Server{Repo: repo, Fps: fps, logger: logger, errReporter: reporter}
}

// Handler routes requests and wraps them with CORS and gzip
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handle(s.query)).Methods(http.MethodGet)
	r.HandleFunc("/view", s.handle(s.view)).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handle(s.health)).Methods(http.MethodGet)
	r.NotFoundHandler = s.handle(func(rq *request) bool {
		return rq.writeerror("bad request path", http.StatusNotFound, nil)
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)
	return gziphandler.GzipHandler(cors(r))
}

func (s *Server) handle(fn func(*request) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rq := newRequest(s.logger, w, r)
		defer rq.finalize()
		fn(rq)
	}
}

func (s *Server) query(rq *request) bool {
	vals := rq.r.URL.Query()
	switch vals.Get("q") {
	case api.QueryPing:
		return rq.writebody(api.Ping{Message: "pong!"})
	case api.QuerySearch:
		q, err := api.ParseSearchQuery(vals, s.Fps)
		if err != nil {
			return rq.writeerror("bad search query", http.StatusBadRequest, err)
		}
		res, err := s.search(q)
		if err != nil {
			s.errReporter.ReportException(err)
			return rq.writeerror("search failed", http.StatusInternalServerError, err)
		}
		return rq.writebody(res)
	default:
		return rq.writeerror("unknown query", http.StatusNotFound, nil)
	}
}

func (s *Server) health(rq *request) bool {
	if _, err := s.Repo.Productions(); err != nil {
		return rq.writeerror("storage unavailable", http.StatusServiceUnavailable, err)
	}
	return rq.writebody(`{"status":"ok"}`)
}

// search collects up to q.Amount matching rows across all productions
func (s *Server) search(q api.SearchQuery) (api.Search, error) {
	prods, err := s.Repo.Productions()
	if err != nil {
		return api.Search{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	var window *ranges.Range
	if q.Range != nil {
		r, err := q.Range.Range()
		if err != nil {
			return api.Search{}, errors.Wrap(err, "search range")
		}
		window = &r
	}

	results := api.Table{}
	if len(prods) == 0 {
		for i := 0; len(results) < q.Amount; i++ {
			row, ok := generated(i, s.Fps)
			if !ok {
				break
			}
			if s.match(row, q.Text, window) {
				results = append(results, row)
			}
		}
	}
	for _, p := range prods {
		rows, err := s.Repo.Lines(p)
		if errors.Is(err, db.ErrNotFound) {
			continue
		}
		if err != nil {
			return api.Search{}, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		for _, row := range rows {
			if len(results) >= q.Amount {
				break
			}
			if s.match(row, q.Text, window) {
				results = append(results, row)
			}
		}
	}

	hash, err := hashstructure.Hash(results, nil)
	if err != nil {
		return api.Search{}, errors.Wrap(err, "hashing results")
	}
	return api.Search{Hash: fmt.Sprintf("%016x", hash), Results: results}, nil
}

func (s *Server) match(row api.Row, text string, window *ranges.Range) bool {
	if text != "" {
		line, _ := row.Get(api.Line)
		fold := cases.Fold()
		if !strings.Contains(fold.String(line), fold.String(text)) {
			return false
		}
	}
	if window == nil {
		return true
	}
	span, err := row.Span(s.Fps)
	if err != nil {
		return false
	}
	r, err := span.Range()
	if err != nil {
		return false
	}
	return ranges.Splice{r}.In(*window)
}

// generated returns the i-th placeholder row. Rows are five seconds
// apart; there are none past the end of the day.
func generated(i int, fps timecode.Fps) (api.Row, bool) {
	in, err := timecode.FromFrameCount(i*5*fps.Nominal(), fps)
	if err != nil {
		return nil, false
	}
	out, err := timecode.FromFrameCount((i*5+4)*fps.Nominal(), fps)
	if err != nil {
		return nil, false
	}
	v := fmt.Sprint(i)
	return api.Row{
		{Value: v, Kind: api.Prod},
		{Value: v, Kind: api.Segment},
		{Value: in.String(), Kind: api.TCIn},
		{Value: out.String(), Kind: api.TCOut},
		{Value: v, Kind: api.Speaker},
		{Value: v, Kind: api.Line},
	}, true
}
