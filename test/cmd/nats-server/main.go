// Package main provides a standalone NATS server for manual watchdog runs.
//
// This server runs in a separate process so worker and monitor binaries can
// be started and killed independently while heartbeat traffic keeps flowing.
// It uses net.Listen to obtain a random available port and outputs connection
// information to stdout for wrapping scripts.
package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

func main() {
	// Get random available port using net.Listen
	// This is the idiomatic Go way to obtain a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatal("Failed to get available port:", err)
	}

	// Extract the assigned port
	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		log.Fatal("Failed to get TCP address from listener")
	}
	port := tcpAddr.Port

	// Close listener - NATS server will bind to this port
	// Small race condition window, but acceptable for local tooling
	_ = listener.Close() // Best effort, error not critical

	// Heartbeats and escalations are plain core NATS subjects, so no
	// JetStream and no storage directory are needed
	opts := &server.Options{
		Host: "127.0.0.1",
		Port: port,
		// Disable logging to reduce noise
		NoLog:  true,
		NoSigs: true, // We handle signals ourselves
	}

	srv, err := server.NewServer(opts)
	if err != nil {
		log.Fatal("Failed to create NATS server:", err)
	}

	// Start server
	go srv.Start()

	// Wait for server to be ready
	if !srv.ReadyForConnections(10 * time.Second) {
		_, _ = fmt.Fprintln(os.Stderr, "NATS server not ready within timeout")
		os.Exit(1)
	}

	// Write connection info to stdout for wrapping scripts
	fmt.Printf("NATS_URL=nats://%s:%d\n", opts.Host, opts.Port)
	fmt.Println("NATS_READY=true")
	_, _ = fmt.Fprintf(os.Stderr, "NATS server started on port %d (PID: %d)\n", port, os.Getpid())
	_, _ = fmt.Fprintln(os.Stderr, "heartbeat subject: vigil.heartbeat, escalation subject: vigil.escalation")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	_, _ = fmt.Fprintln(os.Stderr, "Shutting down NATS server...")

	// Graceful shutdown
	srv.Shutdown()
	srv.WaitForShutdown()

	_, _ = fmt.Fprintln(os.Stderr, "NATS server stopped")
}
