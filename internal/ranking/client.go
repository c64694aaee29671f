package ranking

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PortFile is written by the sidecar next to the database so clients can
// find it without configuration.
const PortFile = "hologram.port"

// EnvAddr overrides port-file discovery when set, e.g. "127.0.0.1:7433".
const EnvAddr = "HOLOGRAM_RANKING_ADDR"

// Client dials the ranking sidecar for one request at a time. A zero timeout
// means no deadline; callers should always set one since the host imposes a
// hard deadline of its own.
type Client struct {
	dataDir string
	timeout time.Duration
}

// NewClient returns a client that discovers the sidecar via the port file
// under dataDir, unless EnvAddr is set.
func NewClient(dataDir string, timeout time.Duration) *Client {
	return &Client{dataDir: dataDir, timeout: timeout}
}

// addr resolves the sidecar address: env override first, then the port file.
func (c *Client) addr() (string, error) {
	if v := os.Getenv(EnvAddr); v != "" {
		return v, nil
	}
	data, err := os.ReadFile(filepath.Join(c.dataDir, PortFile))
	if err != nil {
		return "", fmt.Errorf("read port file: %w", err)
	}
	port := strings.TrimSpace(string(data))
	if port == "" {
		return "", fmt.Errorf("port file is empty")
	}
	return net.JoinHostPort("127.0.0.1", port), nil
}

// do sends one request and reads one response over a fresh connection.
func (c *Client) do(req Request) (*Response, error) {
	addr, err := c.addr()
	if err != nil {
		return nil, err
	}

	conn, err := net.DialTimeout("tcp", addr, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("dial ranking sidecar: %w", err)
	}
	defer conn.Close()

	if c.timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
			return nil, fmt.Errorf("set deadline: %w", err)
		}
	}

	line, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	line = append(line, '\n')
	if _, err := conn.Write(line); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	reader := bufio.NewReader(conn)
	raw, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("response id %q does not match request id %q", resp.ID, req.ID)
	}
	if resp.Type == TypeError {
		return nil, fmt.Errorf("sidecar error: %s", resp.Payload.ErrorMessage)
	}
	return &resp, nil
}

// Query asks the sidecar to rank files for the given prompt and session.
func (c *Client) Query(payload RequestPayload) (*ResponsePayload, error) {
	resp, err := c.do(Request{ID: uuid.NewString(), Type: TypeQuery, Payload: payload})
	if err != nil {
		return nil, err
	}
	if resp.Type != TypeResult {
		return nil, fmt.Errorf("unexpected response type %q", resp.Type)
	}
	return &resp.Payload, nil
}

// Ping reports whether the sidecar is reachable and answering.
func (c *Client) Ping() error {
	resp, err := c.do(Request{ID: uuid.NewString(), Type: TypePing})
	if err != nil {
		return err
	}
	if resp.Type != TypePong {
		return fmt.Errorf("unexpected response type %q", resp.Type)
	}
	return nil
}

// Update pushes changed and boosted files so the sidecar can rescore.
func (c *Client) Update(filesChanged, boostFiles []string) error {
	_, err := c.do(Request{
		ID:   uuid.NewString(),
		Type: TypeUpdate,
		Payload: RequestPayload{
			FilesChanged: filesChanged,
			BoostFiles:   boostFiles,
		},
	})
	return err
}

// Shutdown asks the sidecar to exit. A connection error after the request is
// written is expected and not reported.
func (c *Client) Shutdown() error {
	_, err := c.do(Request{ID: uuid.NewString(), Type: TypeShutdown})
	if err != nil && strings.Contains(err.Error(), "read response") {
		return nil
	}
	return err
}
