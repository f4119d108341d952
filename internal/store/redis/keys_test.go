package redis

import "testing"

func TestSessionKey(t *testing.T) {
	if got := SessionKey("abc"); got != "ldsnotes:session:abc" {
		t.Errorf("SessionKey() = %v, want %v", got, "ldsnotes:session:abc")
	}
}
