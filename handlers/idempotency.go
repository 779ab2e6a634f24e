package handlers

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Idempotency middleware. Ledger writes are expensive and not
// repeatable, so POST requests must carry an Idempotency-Key header
// and a seen key is refused.

type IdempotencyStoreType int

const (
	IdempotencyStoreTypeLocal IdempotencyStoreType = iota
	IdempotencyStoreTypeShared
	IdempotencyStoreTypeRedis
)

func (ist IdempotencyStoreType) String() string {
	return [...]string{"local", "shared", "redis"}[ist]
}

type IdempotencyHandlerOptions struct {
	IgnorePaths []string
	Expiry      time.Duration
}

type IdempotencyStore interface {
	// Get reports whether the key has been seen and is still valid.
	Get(key string) (bool, error)
	// Set marks the key as seen for the given expiry window.
	Set(key string, expiry time.Duration) error
}

// Redis store for idempotency keys.
type IdempotencyStoreRedis struct {
	conn   redis.Conn
	prefix string
}

func NewIdempotencyStoreRedis(c redis.Conn) *IdempotencyStoreRedis {
	return &IdempotencyStoreRedis{conn: c, prefix: "idempotencykey"}
}

func (r *IdempotencyStoreRedis) prefixedKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *IdempotencyStoreRedis) Get(key string) (bool, error) {
	return redis.Bool(r.conn.Do("EXISTS", r.prefixedKey(key)))
}

func (r *IdempotencyStoreRedis) Set(key string, expiry time.Duration) error {
	res, err := r.conn.Do("PSETEX", r.prefixedKey(key), int(expiry.Milliseconds()), 1)
	if err != nil {
		return err
	}
	if res != "OK" {
		return fmt.Errorf("failed to set key: %v", res)
	}
	return nil
}

// Gorm (SQL) store for idempotency keys, shared between instances
// pointing at the same database.
type IdempotencyStoreGorm struct {
	db *gorm.DB
}

type IdempotencyStoreGormItem struct {
	Key        string    `gorm:"column:key;primary_key"`
	ExpiryDate time.Time `gorm:"column:expiry_date"`
}

func (IdempotencyStoreGormItem) TableName() string {
	return "idempotency_keys"
}

func NewIdempotencyStoreGorm(db *gorm.DB) *IdempotencyStoreGorm {
	return &IdempotencyStoreGorm{db: db}
}

func (g *IdempotencyStoreGorm) Get(key string) (bool, error) {
	item := IdempotencyStoreGormItem{}
	err := g.db.First(&item, "key = ? and expiry_date > ?", key, time.Now()).Error
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (g *IdempotencyStoreGorm) Set(key string, expiry time.Duration) error {
	// Refresh the expiry if the key exists, insert otherwise.
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"expiry_date"}),
	}).Create(&IdempotencyStoreGormItem{Key: key, ExpiryDate: time.Now().Add(expiry)}).Error
}

// Prune deletes expired keys from the database.
func (g *IdempotencyStoreGorm) Prune() error {
	return g.db.Delete(IdempotencyStoreGormItem{}, "expiry_date < ?", time.Now()).Error
}

// Local in-memory store for idempotency keys, for single-instance
// deployments and tests.
type IdempotencyStoreLocal struct {
	mu   sync.Mutex
	keys map[string]time.Time // key: expiry
}

func NewIdempotencyStoreLocal() *IdempotencyStoreLocal {
	return &IdempotencyStoreLocal{keys: make(map[string]time.Time)}
}

func (m *IdempotencyStoreLocal) Get(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.keys[key]
	if !ok {
		return false, nil
	}
	if expiry.After(time.Now()) {
		return true, nil
	}

	// Expired keys are removed as a side effect.
	delete(m.keys, key)
	return false, nil
}

func (m *IdempotencyStoreLocal) Set(key string, expiry time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = time.Now().Add(expiry)
	return nil
}

// UseIdempotency returns a handler that refuses POST requests reusing
// an Idempotency-Key within the expiry window.
func UseIdempotency(h http.Handler, opts IdempotencyHandlerOptions, store IdempotencyStore) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		for _, path := range opts.IgnorePaths {
			if strings.HasPrefix(r.URL.Path, path) {
				h.ServeHTTP(rw, r)
				return
			}
		}

		// Only POST requests are checked.
		if r.Method != http.MethodPost {
			h.ServeHTTP(rw, r)
			return
		}

		key := r.Header.Get("Idempotency-Key")
		if len(key) == 0 {
			http.Error(rw, "Idempotency-Key header not found", http.StatusBadRequest)
			return
		}

		exists, err := store.Get(key)
		if err != nil {
			log.
				WithFields(log.Fields{"error": err, "key": key}).
				Warn("Error while reading idempotency key from storage")
			http.Error(rw, "Error while reading idempotency key", http.StatusInternalServerError)
			return
		}
		if exists {
			http.Error(rw, fmt.Sprintf("Idempotency-Key conflict, key: %s", key), http.StatusConflict)
			return
		}

		if err := store.Set(key, opts.Expiry); err != nil {
			log.
				WithFields(log.Fields{"error": err, "key": key}).
				Warn("Error while saving used idempotency key")
			http.Error(rw, "Error while saving used idempotency key", http.StatusInternalServerError)
			return
		}

		h.ServeHTTP(rw, r)
	})
}
