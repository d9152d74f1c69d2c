package session

import (
	"errors"
	"strings"
	"sync"
)

var ErrMissingCredentials = errors.New("username and password are required")

// Gate is the console login flag. It holds no credentials and checks none:
// any non-empty username and password opens it.
type Gate struct {
	mu       sync.RWMutex
	loggedIn bool
	operator string
}

func NewGate() *Gate {
	return &Gate{}
}

// LogIn opens the gate and records the username as the current operator.
func (g *Gate) LogIn(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loggedIn = true
	g.operator = username
	return username, nil
}

func (g *Gate) LogOut() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loggedIn = false
	g.operator = ""
}

// Operator returns the logged-in operator, or false when the gate is closed.
func (g *Gate) Operator() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.operator, g.loggedIn
}
