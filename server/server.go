/*
Package server joins the codec, transport and state packages into a
running IRC server. One goroutine — the hub started by Run — owns every
session and channel; connections feed it complete frames over a single
event channel and each command executes to completion, cascading
broadcasts included, before the next frame is taken. No locks guard the
shared state because nothing else touches it.
*/
package server

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/inconshreveable/log15.v2"

	"github.com/Nalveiz/ft-irc/config"
	"github.com/Nalveiz/ft-irc/data"
	"github.com/Nalveiz/ft-irc/inet"
	"github.com/Nalveiz/ft-irc/irc"
)

// createdLayout formats the server start date for the 003 reply.
const createdLayout = "January 2, 2006"

// Server owns the listening socket, the live sessions and the channel
// registry. It is the composition root; everything reaches shared
// state through it.
type Server struct {
	cfg *config.Config
	log log15.Logger

	listener net.Listener
	created  string

	nextID   int
	sessions map[int]*data.Session
	conns    map[int]*inet.Conn
	channels *data.Registry

	events   chan inet.Event
	accepted chan net.Conn
	quit     chan struct{}
	stopOnce sync.Once
}

// New constructs a server around a validated configuration.
func New(cfg *config.Config, logger log15.Logger) *Server {
	return &Server{
		cfg:      cfg,
		log:      logger,
		created:  time.Now().Format(createdLayout),
		sessions: make(map[int]*data.Session),
		conns:    make(map[int]*inet.Conn),
		channels: data.NewRegistry(),
		events:   make(chan inet.Event),
		accepted: make(chan net.Conn),
		quit:     make(chan struct{}),
	}
}

// Listen binds the IPv4 listening socket. Failures here are fatal to
// startup and reported to the caller rather than retried.
func (s *Server) Listen() error {
	l, err := net.Listen("tcp4", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return errors.Wrapf(err, "server: failed to listen on port %d", s.cfg.Port)
	}
	s.listener = l
	s.log.Info("listening", "port", s.cfg.Port)
	return nil
}

// Run accepts connections and drains the event channel until Stop is
// called. It does not return while the server is healthy.
func (s *Server) Run() error {
	go s.acceptLoop()

	for {
		select {
		case conn := <-s.accepted:
			s.addClient(conn)
		case ev := <-s.events:
			s.handleEvent(ev)
		case <-s.quit:
			for id, conn := range s.conns {
				conn.Close()
				delete(s.conns, id)
			}
			s.log.Info("shutting down")
			return nil
		}
	}
}

// Stop closes the listener and asks Run to wind down. Safe to call
// from any goroutine, more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		if s.listener != nil {
			s.listener.Close()
		}
	})
}

// acceptLoop hands accepted sockets to the hub. Transient accept
// errors are logged and never fatal; a closed listener ends the loop.
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return
			default:
			}
			s.log.Error("accept failed", "err", err)
			return
		}

		select {
		case s.accepted <- conn:
		case <-s.quit:
			conn.Close()
			return
		}
	}
}

// addClient registers a freshly accepted socket as a session.
func (s *Server) addClient(nc net.Conn) {
	if len(s.sessions) >= s.cfg.MaxClients {
		s.log.Warn("max clients reached, rejecting connection", "addr", nc.RemoteAddr())
		nc.Close()
		return
	}

	s.nextID++
	id := s.nextID
	conn := inet.NewConn(id, nc, s.cfg.SendQueueLimit, s.log)
	s.sessions[id] = data.NewSession(id, conn)
	s.conns[id] = conn
	conn.Start(s.events)

	s.log.Info("client connected", "id", id, "addr", conn.RemoteAddr())
}

// handleEvent processes one unit from a connection: a terminal error
// tears the session down, a frame is parsed and dispatched. Invalid
// frames are dropped without a reply by design.
func (s *Server) handleEvent(ev inet.Event) {
	sess, ok := s.sessions[ev.ID]
	if !ok {
		// Late frames from a connection already torn down.
		return
	}

	if ev.Err != nil {
		s.log.Info("client disconnected", "id", ev.ID, "err", ev.Err)
		s.teardown(sess, "Client Quit")
		return
	}

	msg := irc.Parse(ev.Line)
	if !msg.Valid() {
		return
	}
	s.dispatch(sess, msg)
}

// teardown removes the session everywhere: a QUIT notice to every peer
// sharing a channel with it (each peer exactly once), removal from
// every channel with empty channels reaped, then the session and its
// connection handle are freed.
func (s *Server) teardown(sess *data.Session, reason string) {
	if len(sess.Nick) > 0 {
		line := irc.QuitMessage(sess.Nick, sess.Username, s.cfg.Name, reason)
		for peer := range s.peersOf(sess) {
			peer.Send(line)
		}
	}

	for _, ch := range s.channels.MemberOf(sess.ID) {
		if s.channels.DropMember(ch, sess.ID) {
			s.log.Debug("channel removed", "channel", ch.Name())
		}
	}

	delete(s.sessions, sess.ID)
	if conn, ok := s.conns[sess.ID]; ok {
		delete(s.conns, sess.ID)
		conn.Close()
	}
}

// peersOf collects every other session sharing at least one channel
// with sess, deduplicated across channels.
func (s *Server) peersOf(sess *data.Session) map[*data.Session]bool {
	peers := make(map[*data.Session]bool)
	for _, ch := range s.channels.MemberOf(sess.ID) {
		ch.Each(func(member *data.Session) {
			if member != sess {
				peers[member] = true
			}
		})
	}
	return peers
}

// findByNick resolves a nickname by case-sensitive exact match.
func (s *Server) findByNick(nick string) *data.Session {
	for _, sess := range s.sessions {
		if sess.Nick == nick {
			return sess
		}
	}
	return nil
}

// sendWelcome emits the one-shot welcome sequence 001 through 005.
func (s *Server) sendWelcome(sess *data.Session) {
	nick := sess.Nick
	sess.Send(irc.RplWelcome(nick, sess.Username, s.cfg.Name))
	sess.Send(irc.RplYourHost(nick, s.cfg.Name))
	sess.Send(irc.RplCreated(nick, s.created))
	sess.Send(irc.RplMyInfo(nick, s.cfg.Name))
	sess.Send(irc.RplISupport(nick))
	s.log.Info("client registered", "id", sess.ID, "nick", nick)
}
