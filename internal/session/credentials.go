package session

import "sync"

// Credentials holds the tokens used by outbound API clients. Each client receives
// the Credentials it should use; there is no process-wide token state.
type Credentials struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func NewCredentials(accessToken, refreshToken string) *Credentials {
	return &Credentials{accessToken: accessToken, refreshToken: refreshToken}
}

func (c *Credentials) SetTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

func (c *Credentials) AccessToken() string {
	if c == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Credentials) RefreshToken() string {
	if c == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken
}
