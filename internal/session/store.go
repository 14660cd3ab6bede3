package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/sessions"
	"github.com/mluvul69-gif/linea-store/internal/entity"
)

const (
	cookieName = "linea_session"
	sessionTTL = 72 * time.Hour
	// pendingTTL bounds how long a checkout may sit unpaid before the stashed
	// shipping details expire. Stripe checkout sessions expire after 24h.
	pendingTTL = 24 * time.Hour
)

// ErrNoPendingShipping is returned when no shipping details are stashed for a
// checkout session, e.g. the webhook arrived after the pending state expired.
var ErrNoPendingShipping = errors.New("no pending shipping for checkout session")

// Store holds all per-browser state: the signed cookie only carries a random
// session id, the cart and pending shipping details live in Redis with a TTL
// so abandoned sessions do not accumulate.
type Store struct {
	cookies *sessions.CookieStore
	rdb     *redis.Client
	ttl     time.Duration
}

func NewStore(secret string, rdb *redis.Client) *Store {
	cs := sessions.NewCookieStore([]byte(secret))
	cs.Options.Path = "/"
	cs.Options.HttpOnly = true
	cs.MaxAge(int(sessionTTL / time.Second))

	return &Store{
		cookies: cs,
		rdb:     rdb,
		ttl:     sessionTTL,
	}
}

// SessionID returns the browser's session id, minting and setting one when the
// request carries none. A cookie that fails signature verification is treated
// as absent.
func (s *Store) SessionID(r *http.Request, w http.ResponseWriter) (string, error) {
	sess, _ := s.cookies.Get(r, cookieName)
	sid, ok := sess.Values["sid"].(string)
	if ok && sid != "" {
		return sid, nil
	}

	sid = newSessionID()
	sess.Values["sid"] = sid
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session cookie failed: %w", err)
	}
	return sid, nil
}

func newSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func cartKey(sid string) string {
	return fmt.Sprintf("cart:%s", sid)
}

func pendingKey(checkoutID string) string {
	return fmt.Sprintf("pending:%s", checkoutID)
}

// Cart returns the session's cart entries. A session with no cart yet yields
// an empty slice, not an error.
func (s *Store) Cart(ctx context.Context, sid string) ([]entity.CartEntry, error) {
	data, err := s.rdb.Get(ctx, cartKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart failed: %w", err)
	}

	var entries []entity.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return entries, nil
}

func (s *Store) SaveCart(ctx context.Context, sid string, entries []entity.CartEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.rdb.Set(ctx, cartKey(sid), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart failed: %w", err)
	}
	return nil
}

func (s *Store) ClearCart(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, cartKey(sid)).Err(); err != nil {
		return fmt.Errorf("redis delete cart failed: %w", err)
	}
	return nil
}

// SavePendingShipping stashes the checkout form keyed by the Stripe checkout
// session id. Keying on the checkout id rather than the browser session means
// the webhook, which arrives on a cookie-less server-to-server request, can
// always resolve it.
func (s *Store) SavePendingShipping(ctx context.Context, checkoutID string, info *entity.ShippingInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal shipping info failed: %w", err)
	}
	if err := s.rdb.Set(ctx, pendingKey(checkoutID), data, pendingTTL).Err(); err != nil {
		return fmt.Errorf("redis set shipping failed: %w", err)
	}
	return nil
}

func (s *Store) PendingShipping(ctx context.Context, checkoutID string) (*entity.ShippingInfo, error) {
	data, err := s.rdb.Get(ctx, pendingKey(checkoutID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoPendingShipping
	}
	if err != nil {
		return nil, fmt.Errorf("redis get shipping failed: %w", err)
	}

	var info entity.ShippingInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("unmarshal shipping info failed: %w", err)
	}
	return &info, nil
}

func (s *Store) ClearPendingShipping(ctx context.Context, checkoutID string) error {
	if err := s.rdb.Del(ctx, pendingKey(checkoutID)).Err(); err != nil {
		return fmt.Errorf("redis delete shipping failed: %w", err)
	}
	return nil
}
