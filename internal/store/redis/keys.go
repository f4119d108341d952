package redis

const (
	// KeyPrefixSession is the prefix for session token keys
	KeyPrefixSession = "ldsnotes:session:"
)

// SessionKey returns the Redis key holding the token of a session
func SessionKey(id string) string {
	return KeyPrefixSession + id
}
