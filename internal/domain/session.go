package domain

import "time"

// Session is a signed-in browser. The session cookie carries a token naming the session
// and the session record is looked up on every request, so deleting it signs the browser out.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// TTL is the time left before expiry, never negative.
func (s *Session) TTL() time.Duration {
	if d := time.Until(s.ExpiresAt); d > 0 {
		return d
	}
	return 0
}
