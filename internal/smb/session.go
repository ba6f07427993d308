package smb

import (
	"context"
	"fmt"
	"net"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/medianexapp/go-smb2"

	"github.com/pathhound/pathhound/internal/credentials"
	"github.com/pathhound/pathhound/internal/logger"
	"github.com/pathhound/pathhound/internal/utils"
)

// FileInfo holds information about a file or directory on a share.
type FileInfo struct {
	Name         string
	IsDir        bool
	Size         int64
	ModifiedTime time.Time
}

// Session represents an SMB session against one host.
type Session struct {
	log     logger.Interface
	host    string
	port    int
	timeout time.Duration
	creds   *credentials.Credentials

	conn      net.Conn
	session   *smb2.Session
	share     *smb2.Share
	connected bool

	currentShare string

	mu sync.Mutex
}

// NewSession creates a new Session.
func NewSession(host string, port int, timeout time.Duration, creds *credentials.Credentials, log logger.Interface) *Session {
	return &Session{
		log:     log,
		host:    host,
		port:    port,
		timeout: timeout,
		creds:   creds,
	}
}

// Connect establishes a connection to the SMB server.
func (s *Session) Connect() error {
	s.log.Debug(fmt.Sprintf("[>] Connecting to remote SMB server '%s'...", s.host))

	// Check if port is open first
	ok, err := utils.IsPortOpen(s.host, s.port, s.timeout)
	if !ok {
		s.log.Debug(fmt.Sprintf("Could not connect to '%s:%d', %v", s.host, s.port, err))
		return ErrConnectionFailed
	}

	address := fmt.Sprintf("%s:%d", s.host, s.port)
	conn, err := net.DialTimeout("tcp", address, s.timeout)
	if err != nil {
		s.log.Debug(fmt.Sprintf("[%s] Could not connect to '%s': %v", ErrorCategoryNetwork, address, err))
		return ErrConnectionFailed
	}
	s.conn = conn

	dialer := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     s.creds.Username,
			Password: s.creds.Password,
			Domain:   s.creds.Domain,
			Hash:     s.creds.NTRaw,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	session, err := dialer.DialConn(ctx, conn, address)
	if err != nil {
		s.log.Debug(fmt.Sprintf("[%s] Authentication failed: %v", ClassifyError(err), err))
		conn.Close()
		return ErrAuthFailed
	}

	s.session = session
	s.connected = true

	s.log.Debug(fmt.Sprintf("[+] Successfully authenticated to '%s' as '%s\\%s'",
		s.host, s.creds.Domain, s.creds.Username))

	return nil
}

// Close closes the SMB session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.share != nil {
		s.share.Umount()
		s.share = nil
	}
	if s.session != nil {
		s.session.Logoff()
		s.session = nil
	}
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.connected = false
	return nil
}

// IsConnected returns whether the session is connected.
func (s *Session) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected && s.session != nil
}

// Ping tests the connection by listing share names.
func (s *Session) Ping() bool {
	s.mu.Lock()
	if !s.connected || s.session == nil {
		s.mu.Unlock()
		return false
	}
	session := s.session
	s.mu.Unlock()

	_, err := session.ListSharenames()
	return err == nil
}

// ListShares lists the names of the shares available on the server.
func (s *Session) ListShares() ([]string, error) {
	s.mu.Lock()
	if !s.connected || s.session == nil {
		s.mu.Unlock()
		return nil, ErrNotConnected
	}
	session := s.session
	s.mu.Unlock()

	names, err := session.ListSharenames()
	if err != nil {
		s.log.Debug(fmt.Sprintf("Could not list shares on '%s': %v", s.host, err))
		return nil, err
	}

	return names, nil
}

// SetShare mounts the given share, unmounting the current one first.
// Network operations run without s.mu held so Close can interrupt them.
func (s *Session) SetShare(shareName string) error {
	s.mu.Lock()
	if !s.connected || s.session == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	session := s.session
	oldShare := s.share
	s.share = nil
	s.mu.Unlock()

	if oldShare != nil {
		oldShare.Umount()
	}

	share, err := session.Mount(shareName)
	if err != nil {
		s.log.Debug(fmt.Sprintf("Could not access share '%s': %v", shareName, err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		share.Umount()
		return ErrNotConnected
	}

	s.share = share
	s.currentShare = shareName
	return nil
}

// CurrentShare returns the currently mounted share name.
func (s *Session) CurrentShare() string {
	return s.currentShare
}

// ListContents lists the contents of a directory on the current share.
func (s *Session) ListContents(dirPath string) ([]FileInfo, error) {
	s.mu.Lock()
	if s.share == nil || !s.connected {
		s.mu.Unlock()
		return nil, ErrShareNotSet
	}
	share := s.share
	s.mu.Unlock()

	// SMB paths use backslashes
	fullPath := strings.ReplaceAll(path.Clean(dirPath), "/", "\\")
	if fullPath == "" || fullPath == "." || fullPath == "\\" {
		fullPath = "."
	}

	entries, err := share.ReadDir(fullPath)
	if err != nil {
		s.log.Debug(fmt.Sprintf("Error listing contents of '%s': %v", fullPath, err))
		return nil, err
	}

	contents := make([]FileInfo, 0, len(entries))
	for _, info := range entries {
		contents = append(contents, FileInfo{
			Name:         info.Name(),
			IsDir:        info.IsDir(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime(),
		})
	}

	return contents, nil
}
