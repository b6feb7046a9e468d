package room

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/golang-jwt/jwt/v5"
)

// reconnectClaims binds a signed token to exactly one room and seat
// (spec.md §4.6.4). Tokens are allocated at join time and handed back to
// the client so a dropped connection can resume the same seat.
type reconnectClaims struct {
	RoomID string `json:"roomId"`
	Seat   int    `json:"seat"`
	jwt.RegisteredClaims
}

// reconnectStore signs/verifies reconnect tokens and records, in a
// ristretto TTL cache, which seats are currently inside their disconnect
// grace window (spec.md §4.6.4: 60s disconnect grace). The cache is
// non-authoritative: grace expiry itself is driven by the room's own timer,
// and the reconnect path in handleJoin does not consult isWithinGrace.
type reconnectStore struct {
	secret string
	ttl    time.Duration
	grace  *ristretto.Cache
}

func newReconnectStore(secret string, ttl time.Duration) (*reconnectStore, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("reconnect store: creating grace cache: %w", err)
	}
	return &reconnectStore{secret: secret, ttl: ttl, grace: cache}, nil
}

func (s *reconnectStore) issue(roomID string, seat int) (string, error) {
	claims := &reconnectClaims{
		RoomID: roomID,
		Seat:   seat,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// verify returns the seat a token was issued for, provided it is signed
// with the configured secret, unexpired, and names this room's id.
func (s *reconnectStore) verify(roomID, tokenStr string) (int, error) {
	claims := &reconnectClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("reconnect token not valid")
	}
	if claims.RoomID != roomID {
		return 0, errors.New("reconnect token issued for a different room")
	}
	return claims.Seat, nil
}

// markGraceStart records that seat has entered its disconnect grace window,
// expiring from the cache at the same moment the real grace timer would
// fire.
func (s *reconnectStore) markGraceStart(seat int, grace time.Duration) {
	s.grace.SetWithTTL(seat, true, 1, grace)
}

func (s *reconnectStore) clearGrace(seat int) {
	s.grace.Del(seat)
}

func (s *reconnectStore) isWithinGrace(seat int) bool {
	_, ok := s.grace.Get(seat)
	return ok
}

func (s *reconnectStore) Close() {
	s.grace.Close()
}
