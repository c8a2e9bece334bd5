package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	uerrors "article-uploader/internal/errors"
	"article-uploader/internal/protocol"
)

// Listen binds addr and answers discovery probes until ctx is done.
func Listen(ctx context.Context, log *slog.Logger, addr string, baseURL string) error {
	conn, err := net.ListenPacket("udp4", addr)
	if err != nil {
		return fmt.Errorf("failed to bind discovery address %s: %w", addr, err)
	}
	log.Info("Discovery listening", "addr", conn.LocalAddr().String())
	return Serve(ctx, log, conn, baseURL)
}

// Serve answers every probe received on conn with baseURL. It closes conn
// when ctx is done.
func Serve(ctx context.Context, log *slog.Logger, conn net.PacketConn, baseURL string) error {
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	buf := make([]byte, 1024)
	for {
		n, remoteAddr, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Warn("Error reading discovery probe", "error", err)
			continue
		}

		if string(buf[:n]) != protocol.DiscoveryMsg {
			continue
		}
		log.Debug("Received discovery request", "from", remoteAddr.String())
		if _, err := conn.WriteTo([]byte(baseURL), remoteAddr); err != nil {
			log.Warn("Error sending discovery response", "to", remoteAddr.String(), "error", err)
		}
	}
}

// FindServer sends a probe to target and returns the base URL of the first
// receiver answering within timeout. A reply without a host is completed with
// the address the reply came from.
func FindServer(ctx context.Context, log *slog.Logger, target string, timeout time.Duration) (string, error) {
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return "", fmt.Errorf("failed to listen for discovery reply: %w", err)
	}
	defer conn.Close()

	targetAddr, err := net.ResolveUDPAddr("udp4", target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", target, err)
	}

	msg := []byte(protocol.DiscoveryMsg)
	if _, err := conn.WriteTo(msg, targetAddr); err != nil {
		// Broadcast may be forbidden, fall back to the local host
		log.Warn("Discovery probe failed, trying localhost", "target", target, "error", err)
		localAddr := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: targetAddr.Port}
		if _, err := conn.WriteTo(msg, localAddr); err != nil {
			return "", fmt.Errorf("%w: %v", uerrors.ErrNoServer, err)
		}
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return "", err
	}

	buf := make([]byte, 1024)
	n, remoteAddr, err := conn.ReadFrom(buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", uerrors.ErrNoServer, err)
	}

	baseURL, err := completeHost(string(buf[:n]), remoteAddr)
	if err != nil {
		return "", fmt.Errorf("%w: invalid reply: %v", uerrors.ErrNoServer, err)
	}
	log.Info("Found receiver", "url", baseURL)
	return baseURL, nil
}

func completeHost(reply string, from net.Addr) (string, error) {
	u, err := url.Parse(reply)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("missing scheme in %q", reply)
	}

	host := u.Hostname()
	if host != "" && !net.ParseIP(host).IsUnspecified() {
		return u.String(), nil
	}
	udpAddr, ok := from.(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("could not get UDP address from reply")
	}
	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(udpAddr.IP.String(), port)
	} else {
		u.Host = udpAddr.IP.String()
	}
	return u.String(), nil
}
