/*
Package config creates the server configuration from an optional toml
file merged with the two positional command line arguments.

An example configuration looks like this:

	servername = "irc.example.org"
	maxclients = 512

	# Cap on the per-connection outbound queue in bytes; a client that
	# falls this far behind is disconnected.
	sendqueue = 1048576

	# Optional bcrypt hash checked instead of the plain password.
	passwordhash = "$2a$10$..."

The command line always wins: `ircd <port> <password>`.
*/
package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// DefaultName is the server name used in replies that carry one.
	DefaultName = "localhost"
	// DefaultMaxClients bounds concurrently accepted connections.
	DefaultMaxClients = 1024
	// DefaultSendQueueLimit bounds one connection's outbound queue.
	DefaultSendQueueLimit = 1 << 20

	minPort = 1024
	maxPort = 65535
)

// Config is the full server configuration.
type Config struct {
	Name           string `toml:"servername"`
	Port           int    `toml:"port"`
	Password       string `toml:"password"`
	PasswordHash   string `toml:"passwordhash"`
	MaxClients     int    `toml:"maxclients"`
	SendQueueLimit int    `toml:"sendqueue"`
}

// New returns a configuration holding the defaults.
func New() *Config {
	return &Config{
		Name:           DefaultName,
		MaxClients:     DefaultMaxClients,
		SendQueueLimit: DefaultSendQueueLimit,
	}
}

// FromFile overlays values from a toml file. A missing file is not an
// error; the defaults simply stand.
func (c *Config) FromFile(filename string) error {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(filename, c); err != nil {
		return errors.Wrapf(err, "config: failed to parse %s", filename)
	}
	return nil
}

// MergeArgs applies the positional command line arguments over the
// file values. The port must be a purely numeric string.
func (c *Config) MergeArgs(portArg, password string) error {
	if len(portArg) == 0 {
		return errors.New("config: port cannot be empty")
	}
	for i := 0; i < len(portArg); i++ {
		if portArg[i] < '0' || portArg[i] > '9' {
			return errors.New("config: port must be a number")
		}
	}

	port, err := strconv.Atoi(portArg)
	if err != nil {
		return errors.Wrap(err, "config: invalid port")
	}

	c.Port = port
	c.Password = password
	return c.Validate()
}

// Validate checks the invariants every run of the server relies on.
func (c *Config) Validate() error {
	if c.Port < minPort || c.Port > maxPort {
		return errors.Errorf("config: port must be between %d and %d", minPort, maxPort)
	}
	if len(c.Password) == 0 && len(c.PasswordHash) == 0 {
		return errors.New("config: password cannot be empty")
	}
	if len(c.Name) == 0 {
		return errors.New("config: servername cannot be empty")
	}
	if c.MaxClients <= 0 {
		return errors.New("config: maxclients must be positive")
	}
	if c.SendQueueLimit < 0 {
		return errors.New("config: sendqueue cannot be negative")
	}
	return nil
}
