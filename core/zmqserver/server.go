package zmqserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/go-zeromq/zmq4"

	"github.com/dmitrymomot/lrucache/core/logger"
	"github.com/dmitrymomot/lrucache/core/store"
)

var (
	ErrServerAlreadyRunning = errors.New("zmq server is already running")
	ErrListen               = errors.New("failed to bind zmq socket")
)

// Store is the subset of *store.Store served over ZeroMQ.
type Store interface {
	Get(key string) (string, error)
	Put(key, value string) error
	Snapshot() []store.Entry
}

// Server answers cache requests on a ZeroMQ REP socket.
// Each request is a single JSON frame and gets exactly one JSON reply frame.
type Server struct {
	addr   string
	store  Store
	logger *slog.Logger

	mu      sync.RWMutex
	socket  zmq4.Socket
	running bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger for server operations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server bound to addr, a ZeroMQ endpoint such as
// "tcp://127.0.0.1:5555".
func New(addr string, st Store, opts ...Option) *Server {
	s := &Server{
		addr:   addr,
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the bound endpoint once the server is running, which resolves
// a ":0" port, or the configured endpoint otherwise.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.socket != nil {
		if a := s.socket.Addr(); a != nil {
			return a.Network() + "://" + a.String()
		}
	}
	return s.addr
}

// Start binds the socket and serves requests until ctx is canceled.
// It returns nil after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	sockCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sock := zmq4.NewRep(sockCtx)
	if err := sock.Listen(s.addr); err != nil {
		s.mu.Unlock()
		_ = sock.Close()
		return fmt.Errorf("%w %s: %w", ErrListen, s.addr, err)
	}
	s.socket = sock
	s.running = true
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "starting zmq server", logger.Addr(s.Addr()))

	// Recv has no deadline; closing the socket is what unblocks it.
	go func() {
		<-sockCtx.Done()
		_ = sock.Close()
	}()

	defer func() {
		cancel()
		s.mu.Lock()
		s.socket = nil
		s.running = false
		s.mu.Unlock()
		s.logger.Info("zmq server stopped")
	}()

	for {
		msg, err := sock.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("zmq receive: %w", err)
		}

		reply := s.Handle(msg.Bytes())
		if err := sock.Send(zmq4.NewMsg(reply)); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("zmq send: %w", err)
		}
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
func (s *Server) Run(ctx context.Context) func() error {
	return func() error {
		return s.Start(ctx)
	}
}

// Handle decodes one request frame, applies it to the store and returns the
// encoded reply. It never fails: every problem is reported inside the reply.
func (s *Server) Handle(frame []byte) []byte {
	var req Request
	var reply Reply
	if err := json.Unmarshal(frame, &req); err != nil {
		reply = failure(CodeBadRequest, "malformed request: "+err.Error())
	} else {
		reply = s.apply(req)
	}

	s.logger.Debug("zmq request",
		logger.Op(req.Op),
		logger.CacheKey(req.Key),
		slog.Bool("ok", reply.OK),
	)

	b, err := json.Marshal(reply)
	if err != nil {
		b, _ = json.Marshal(failure(CodeInternal, err.Error()))
	}
	return b
}

func (s *Server) apply(req Request) Reply {
	switch req.Op {
	case OpGet:
		v, err := s.store.Get(req.Key)
		if err != nil {
			return fromError(err)
		}
		return Reply{OK: true, Value: v}
	case OpPut:
		if err := s.store.Put(req.Key, req.Value); err != nil {
			return fromError(err)
		}
		return Reply{OK: true}
	case OpSnapshot:
		entries := s.store.Snapshot()
		if entries == nil {
			entries = []store.Entry{}
		}
		return Reply{OK: true, Entries: entries}
	case "":
		return failure(CodeBadRequest, "missing op")
	default:
		return failure(CodeUnknownOp, "unknown op "+req.Op)
	}
}

func fromError(err error) Reply {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return failure(CodeNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidInput):
		return failure(CodeInvalidInput, err.Error())
	case errors.Is(err, store.ErrClosed):
		return failure(CodeClosed, err.Error())
	default:
		return failure(CodeInternal, err.Error())
	}
}

func failure(code, message string) Reply {
	return Reply{Error: &ReplyError{Code: code, Message: message}}
}
