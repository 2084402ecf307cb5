package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/slipwayhq/slipwayd/internal"
	"github.com/slipwayhq/slipwayd/internal/auth"
	"github.com/slipwayhq/slipwayd/internal/build"
	"github.com/slipwayhq/slipwayd/internal/protocol"
)

// Handles a build command.
//
// Receives a manifest from the CLI and runs the build workflow for each of
// its images against the Docker daemon. Requests share this server's
// session, so a base image pulled for one request is not pulled again for a
// later one.
func (s *Server) handleBuild(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.BuildRequest](payload)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}
	if req.Manifest == nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: "build request carries no manifest"})
		return
	}

	start := time.Now()

	svc := build.New(s.docker, s.session, build.Options{
		SourceDir:         req.Manifest.SourceDir,
		OutputDir:         req.Manifest.OutputDir,
		Args:              req.Args,
		ProjectProperties: req.Manifest.Properties,
		GlobalProperties:  req.Properties,
		Registry:          req.Registry,
		PullRegistry:      req.PullRegistry,
		AutoPull:          req.AutoPull,
		Auth:              auth.Parameters{Username: req.Username, Password: req.Password},
		NoCacheOverride:   req.NoCacheOverride,
	})

	built, err := svc.ExecuteAll(ctx, req.Manifest.Images, req.Parallel)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	s.mu.Lock()
	s.builds++
	s.mu.Unlock()

	s.respond(conn, protocol.CmdOK, &protocol.BuildResult{
		Built:   built,
		Elapsed: time.Since(start).Round(time.Millisecond).String(),
	})
}

// Handles a status command.
func (s *Server) handleStatus(conn net.Conn) {
	s.mu.Lock()
	builds := s.builds
	s.mu.Unlock()

	uptime := time.Since(s.startedAt).Truncate(time.Second)

	s.respond(conn, protocol.CmdOK, &protocol.StatusResult{
		Running: true,
		Version: internal.VersionString(),
		Pid:     os.Getpid(),
		Uptime:  uptime.String(),
		Builds:  builds,
		Pulled:  s.session.PulledImages(),
	})
}

// Handles a shutdown command.
func (s *Server) handleShutdown(conn net.Conn) {
	s.respond(conn, protocol.CmdOK, nil)
	slog.Info("shutdown requested")

	go func() {
		s.Stop()
	}()
}
