package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	c := New()
	if c.Name != DefaultName {
		t.Error("Wrong default name:", c.Name)
	}
	if c.MaxClients != DefaultMaxClients {
		t.Error("Wrong default maxclients:", c.MaxClients)
	}
	if c.SendQueueLimit != DefaultSendQueueLimit {
		t.Error("Wrong default sendqueue:", c.SendQueueLimit)
	}
}

func TestConfig_MergeArgs(t *testing.T) {
	c := New()
	if err := c.MergeArgs("6667", "secret"); err != nil {
		t.Fatal("Valid args should merge:", err)
	}
	if c.Port != 6667 || c.Password != "secret" {
		t.Error("Args not applied:", c.Port, c.Password)
	}
}

func TestConfig_MergeArgsRejects(t *testing.T) {
	tests := []struct {
		port     string
		password string
	}{
		{"", "pw"},
		{"abc", "pw"},
		{"66x7", "pw"},
		{"-1", "pw"},
		{"80", "pw"},
		{"70000", "pw"},
		{"6667", ""},
	}

	for _, test := range tests {
		c := New()
		if err := c.MergeArgs(test.port, test.password); err == nil {
			t.Errorf("Args (%q, %q) should be rejected.", test.port, test.password)
		}
	}
}

func TestConfig_FromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "ircdconfig")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "ircd.toml")
	content := []byte("servername = \"irc.example.org\"\nmaxclients = 5\nsendqueue = 2048\n")
	if err = ioutil.WriteFile(filename, content, 0644); err != nil {
		t.Fatal(err)
	}

	c := New()
	if err = c.FromFile(filename); err != nil {
		t.Fatal("Valid file should load:", err)
	}
	if c.Name != "irc.example.org" {
		t.Error("servername not applied:", c.Name)
	}
	if c.MaxClients != 5 || c.SendQueueLimit != 2048 {
		t.Error("Limits not applied:", c.MaxClients, c.SendQueueLimit)
	}
}

func TestConfig_FromFileMissing(t *testing.T) {
	c := New()
	if err := c.FromFile("does-not-exist.toml"); err != nil {
		t.Error("A missing file should not be an error:", err)
	}
}
