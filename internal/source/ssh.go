package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/vmunix/mediatheque/internal/catalog"
	"github.com/vmunix/mediatheque/pkg/title"
)

// SSHConfig holds the connection settings for a remote media host.
type SSHConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	KeyFile  string
	Root     string
	Timeout  time.Duration
}

// SSH serves media from a remote host over an SSH connection. Listing
// runs find(1) on the remote side; streaming pipes cat(1).
type SSH struct {
	config SSHConfig
	client *ssh.Client
}

// DialSSH connects to the remote host.
func DialSSH(cfg SSHConfig) (*SSH, error) {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	var methods []ssh.AuthMethod
	if cfg.KeyFile != "" {
		key, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}

	client, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            methods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // media hosts live on the LAN
		Timeout:         cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Host, err)
	}
	return &SSH{config: cfg, client: client}, nil
}

// Close shuts down the connection.
func (s *SSH) Close() error {
	return s.client.Close()
}

// List runs find under the category directory and filters to media
// extensions client-side.
func (s *SSH) List(ctx context.Context, category catalog.Category) ([]string, error) {
	dir := path.Join(s.config.Root, string(category))
	out, err := s.run(ctx, fmt.Sprintf("find %s -type f 2>/dev/null || true", shellQuote(dir)))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && title.IsMediaFile(line) {
			paths = append(paths, line)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Open streams the remote file through cat. The reader does not
// support seeking; range requests fall back to full reads.
func (s *SSH) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := session.Start("cat " + shellQuote(p)); err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("start cat: %w", err)
	}

	stop := context.AfterFunc(ctx, func() { _ = session.Close() })
	return &sshReader{Reader: stdout, session: session, stop: stop}, nil
}

// Size stats the remote file.
func (s *SSH) Size(ctx context.Context, p string) (int64, error) {
	out, err := s.run(ctx, "stat -c %s "+shellQuote(p))
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", p, ErrNotFound)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse size: %w", err)
	}
	return n, nil
}

func (s *SSH) run(ctx context.Context, cmd string) ([]byte, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	defer func() { _ = session.Close() }()

	stop := context.AfterFunc(ctx, func() { _ = session.Close() })
	defer stop()

	var buf bytes.Buffer
	session.Stdout = &buf
	if err := session.Run(cmd); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

type sshReader struct {
	io.Reader
	session *ssh.Session
	stop    func() bool
}

func (r *sshReader) Close() error {
	r.stop()
	return r.session.Close()
}

// shellQuote wraps s in single quotes for safe use in a remote command.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
