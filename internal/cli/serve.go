package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/mhalvors/golevels/pkg/errors"
	"github.com/mhalvors/golevels/pkg/ontology"
	"github.com/mhalvors/golevels/pkg/pipeline"
	"github.com/mhalvors/golevels/pkg/summary"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	refresh bool   // bypass cached results at startup
}

// serveCommand creates the serve command, which computes a summary once and
// exposes it over an HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve <snapshot.obo>",
		Short: "Serve a computed summary over an HTTP API",
		Long: `Compute the summary table for a snapshot and serve it over HTTP.

Endpoints:
  GET /healthz                 liveness check
  GET /api/info                run metadata
  GET /api/summary             full summary table
  GET /api/terms/{id}          one term's levels
  GET /api/ontologies/{ont}    rows for one ontology (bp, cc, mf)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, oboPath string, opts serveOpts) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		OBOPath: oboPath,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done("Summary ready")

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newAPIRouter(result),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// apiServer serves one computed summary.
type apiServer struct {
	result *pipeline.Result
	byID   map[string]summary.Record
}

// newAPIRouter builds the HTTP routes for a computed result.
func newAPIRouter(result *pipeline.Result) http.Handler {
	s := &apiServer{
		result: result,
		byID:   make(map[string]summary.Record, result.Table.Len()),
	}
	for _, rec := range result.Table.Records {
		s.byID[rec.ID] = rec
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/info", s.handleInfo)
		r.Get("/summary", s.handleSummary)
		r.Get("/terms/{id}", s.handleTerm)
		r.Get("/ontologies/{ont}", s.handleOntology)
	})
	return r
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":       s.result.RunID,
		"snapshot":     s.result.SourceHash,
		"data_version": s.result.DataVersion,
		"rows":         s.result.Table.Len(),
	})
}

func (s *apiServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.result.Table)
}

func (s *apiServer) handleTerm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := s.byID[id]
	if !ok {
		writeError(w, errors.New(errors.ErrCodeTermNotFound, "term %s not in summary", id))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *apiServer) handleOntology(w http.ResponseWriter, r *http.Request) {
	ont, err := ontology.Parse(chi.URLParam(r, "ont"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &summary.Table{Records: s.result.Table.ByOntology(ont)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeTermNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidOntology, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
