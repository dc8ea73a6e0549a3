package gsettings

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rafa/screenux-screenshot/pkg/logging"
)

// commandTimeout bounds every backend call. gsettings normally answers in
// milliseconds; a hung session bus should not wedge the CLI.
const commandTimeout = 3 * time.Second

// Runner executes one external command and returns its stdout. Injected so
// tests can script the backend.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// ExecRunner is the real Runner.
func ExecRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return string(out), fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return string(out), err
	}
	return string(out), nil
}

// CLI is the gsettings-backed Store. Schema and key listings are cached for
// the lifetime of the process; slot values are always read fresh.
type CLI struct {
	runner Runner
	logger *logrus.Entry

	mu        sync.Mutex
	available *bool
	schemas   map[string]bool
	keys      map[string]map[string]bool
}

// NewCLI returns a Store that shells out to gsettings.
func NewCLI() *CLI {
	return NewCLIWithRunner(ExecRunner)
}

// NewCLIWithRunner returns a CLI driving the given runner.
func NewCLIWithRunner(runner Runner) *CLI {
	return &CLI{
		runner: runner,
		logger: logging.NewLogger("gsettings"),
		keys:   make(map[string]map[string]bool),
	}
}

func (c *CLI) run(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	out, err := c.runner(ctx, "gsettings", args...)
	if err != nil {
		c.logger.WithError(err).Debugf("gsettings %s failed", strings.Join(args, " "))
		return strings.TrimSpace(out), err
	}
	return strings.TrimSpace(out), nil
}

// Available reports whether the gsettings tool answers at all.
func (c *CLI) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.available == nil {
		_, err := c.run("--version")
		ok := err == nil
		c.available = &ok
	}
	return *c.available
}

// SchemaExists checks the schema against the host's installed schema list.
func (c *CLI) SchemaExists(schema string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.schemas == nil {
		c.schemas = make(map[string]bool)
		out, err := c.run("list-schemas")
		if err != nil {
			return false
		}
		for _, line := range strings.Split(out, "\n") {
			if name := strings.TrimSpace(line); name != "" {
				c.schemas[name] = true
			}
		}
	}
	return c.schemas[schema]
}

// KeyExists checks the key against the schema's declared keys.
func (c *CLI) KeyExists(schema, key string) bool {
	if !c.SchemaExists(schema) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	declared, ok := c.keys[schema]
	if !ok {
		declared = make(map[string]bool)
		out, err := c.run("list-keys", schema)
		if err != nil {
			return false
		}
		for _, line := range strings.Split(out, "\n") {
			if name := strings.TrimSpace(line); name != "" {
				declared[name] = true
			}
		}
		c.keys[schema] = declared
	}
	return declared[key]
}

// Get reads the raw value text of schema[:path] key.
func (c *CLI) Get(schema, key string) (string, error) {
	out, err := c.run("get", schema, key)
	if err != nil {
		return "", &NotFoundError{Schema: schema, Key: key}
	}
	return out, nil
}

// Set writes a value to schema[:path] key.
func (c *CLI) Set(schema, key, value string) error {
	if _, err := c.run("set", schema, key, value); err != nil {
		return &WriteError{Schema: schema, Key: key, Value: value, Err: err}
	}
	return nil
}

// Reset restores schema[:path] key to its system default.
func (c *CLI) Reset(schema, key string) error {
	if _, err := c.run("reset", schema, key); err != nil {
		return &WriteError{Schema: schema, Key: key, Err: err}
	}
	return nil
}
