// Package server exposes the interpreter over HTTP: each request gets
// its own arena and vocabulary, exactly like one invocation of the
// ailisp binary reading from a file, so concurrent requests never share
// mutable interpreter state.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/melvinzhang/ailisp/arena"
	"github.com/melvinzhang/ailisp/config"
	"github.com/melvinzhang/ailisp/eval"
	"github.com/melvinzhang/ailisp/lang"
	"github.com/melvinzhang/ailisp/reader"
	"github.com/melvinzhang/ailisp/telemetry"
)

// Server holds the dependencies shared by every request handler: a
// logger and an optional history store. A nil Store disables
// persistence, leaving the endpoints purely in-memory.
type Server struct {
	conf  *config.Config
	store *Store
}

// New builds a Server. store may be nil.
func New(conf *config.Config, store *Store) *Server {
	return &Server{conf: conf, store: store}
}

// Router builds the gin engine with the /eval and /run-utm routes and a
// middleware that logs each request under a fresh telemetry.NewRunID
// request ID, also stored in the context for the history store.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.POST("/eval", s.handleEval)
	r.POST("/run-utm", s.handleRunUTM)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := telemetry.NewRunID()
		c.Set("request_id", reqID)
		s.conf.Logger().Infow("request", "request_id", reqID, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Next()
	}
}

type evalRequest struct {
	Source string `json:"source" binding:"required"`
}

type evalResponse struct {
	Trace     string `json:"trace"`
	CallsEval int64  `json:"calls_eval"`
	CallsCons int64  `json:"calls_cons"`
}

// handleEval reads every top-level meta-expression in the request body
// and evaluates it, returning the concatenated expression/value trace
// lines — the same output `ailisp` would print for that source read
// from a file.
func (s *Server) handleEval(c *gin.Context) {
	var req evalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a := arena.New(0)
	sym := lang.Bootstrap(a)
	var trace strings.Builder
	p := arena.NewPrinter(&trace)
	ev := eval.New(a, sym, s.conf, p)
	lex := reader.NewLexer(a, strings.NewReader(req.Source))
	parser := reader.NewParser(a, sym, lex)

	for {
		e, err := parser.ReadTopLevel()
		if err != nil {
			break
		}
		if a.Head(e) == sym.Define {
			name := a.Head(a.Tail(e))
			def := a.Head(a.Tail(a.Tail(e)))
			if !a.IsAtom(name) {
				varList := a.Tail(name)
				fname := a.Head(name)
				def = a.Cons(sym.Lambda, a.Cons(varList, a.Cons(def, arena.Nil)))
				name = fname
			}
			a.Trace(p, "define", name)
			a.Trace(p, "value", def)
			a.SetHead(a.Bindings(name), def)
			continue
		}
		a.Trace(p, "expression", e)
		v := ev.EvalTop(e)
		a.Trace(p, "value", v)
	}
	p.Flush()

	resp := evalResponse{Trace: trace.String(), CallsEval: ev.EvalCalls(), CallsCons: a.ConsCalls()}
	if s.store != nil {
		requestID, _ := c.Get("request_id")
		if err := s.store.SaveEval(c.Request.Context(), requestID.(string), req.Source, resp.Trace); err != nil {
			s.conf.Logger().Warnw("failed to persist eval history", "error", err)
		}
	}
	c.JSON(http.StatusOK, resp)
}

type runUTMRequest struct {
	Expr string `json:"expr" binding:"required"`
}

type runUTMResponse struct {
	Result string `json:"result"`
}

// handleRunUTM wraps expr as the operand of run-utm-on, so a caller can
// watch the interpreter encode expr onto a tape and then read it back
// through its own reader and evaluator, without needing to know the
// `bits`/`run-utm-on` syntax itself.
func (s *Server) handleRunUTM(c *gin.Context) {
	var req runUTMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a := arena.New(0)
	sym := lang.Bootstrap(a)
	var out strings.Builder
	p := arena.NewPrinter(&out)
	ev := eval.New(a, sym, s.conf, p)

	src := "run-utm-on (bits '(" + req.Expr + "))\n"
	lex := reader.NewLexer(a, strings.NewReader(src))
	parser := reader.NewParser(a, sym, lex)
	e, err := parser.ReadTopLevel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v := ev.EvalTop(e)

	resp := runUTMResponse{Result: a.Render(v)}
	if s.store != nil {
		requestID, _ := c.Get("request_id")
		if err := s.store.SaveEval(c.Request.Context(), requestID.(string), src, resp.Result); err != nil {
			s.conf.Logger().Warnw("failed to persist run-utm history", "error", err)
		}
	}
	c.JSON(http.StatusOK, resp)
}
