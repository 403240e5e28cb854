package state

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/store"
)

// SaveDebounce is how long the container waits after the last mutation
// before persisting. A mutation inside the window resets the timer;
// the eventual save reflects the latest state (last-write-wins).
const SaveDebounce = 500 * time.Millisecond

var ErrUserNotFound = errors.New("利用者が見つかりません")
var ErrRecordNotFound = errors.New("記録が見つかりません")

// Container owns the in-memory collections. Mutations always replace
// whole objects, never edit fields in place, so readers can aggregate
// over a consistent snapshot. Persistence is best-effort: a failed
// save is logged and the mutation stays in memory until the next
// successful save.
type Container struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger

	users        []models.User
	records      []models.MealRecord
	menu         *models.MenuItem
	backupConfig models.BackupConfig

	debounce time.Duration
	timer    *time.Timer
	dirty    map[string]bool
}

// NewContainer loads all collections from the store. Missing keys are
// read as empty.
func NewContainer(s store.Store, log *zap.Logger) (*Container, error) {
	c := &Container{
		store:    s,
		log:      log,
		debounce: SaveDebounce,
		dirty:    make(map[string]bool),
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces the in-memory collections with the persisted state.
// Called at startup and after a successful restore.
func (c *Container) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var users []models.User
	if _, err := store.Load(c.store, store.KeyUsers, &users); err != nil {
		return err
	}
	var records []models.MealRecord
	if _, err := store.Load(c.store, store.KeyMealRecords, &records); err != nil {
		return err
	}
	var menu *models.MenuItem
	if _, err := store.Load(c.store, store.KeyCurrentMenu, &menu); err != nil {
		return err
	}
	var cfg models.BackupConfig
	if _, err := store.Load(c.store, store.KeyBackupConfig, &cfg); err != nil {
		return err
	}

	c.users = users
	c.records = records
	c.menu = menu
	c.backupConfig = cfg
	c.dirty = make(map[string]bool)
	return nil
}

// Users returns a snapshot copy of the user collection.
func (c *Container) Users() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.User, len(c.users))
	copy(out, c.users)
	return out
}

// Records returns a snapshot copy of the meal record collection.
func (c *Container) Records() []models.MealRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.MealRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Menu returns the current menu, or nil when none is set.
func (c *Container) Menu() *models.MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.menu == nil {
		return nil
	}
	m := *c.menu
	return &m
}

func (c *Container) BackupConfig() models.BackupConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backupConfig
}

// AddUser appends a user.
func (c *Container) AddUser(u models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append(c.users, u)
	c.markDirty(store.KeyUsers)
}

// ReplaceUser swaps the stored user with the same ID for the given
// one. Historical meal records are untouched by design.
func (c *Container) ReplaceUser(u models.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.users {
		if existing.ID == u.ID {
			c.users[i] = u
			c.markDirty(store.KeyUsers)
			return nil
		}
	}
	return ErrUserNotFound
}

// RemoveUser deletes a user from the roster. Their meal records stay
// and become orphans, which the integrity check reports.
func (c *Container) RemoveUser(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, u := range c.users {
		if u.ID == id {
			c.users = append(c.users[:i], c.users[i+1:]...)
			c.markDirty(store.KeyUsers)
			return nil
		}
	}
	return ErrUserNotFound
}

// SetUsers replaces the whole roster (CSV import, bulk actions).
func (c *Container) SetUsers(users []models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = users
	c.markDirty(store.KeyUsers)
}

// AddRecord appends a meal record.
func (c *Container) AddRecord(r models.MealRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
	c.markDirty(store.KeyMealRecords)
}

// ReplaceRecord swaps the stored record with the same ID.
func (c *Container) ReplaceRecord(r models.MealRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.records {
		if existing.ID == r.ID {
			c.records[i] = r
			c.markDirty(store.KeyMealRecords)
			return nil
		}
	}
	return ErrRecordNotFound
}

// SetMenu replaces the current menu singleton.
func (c *Container) SetMenu(m *models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.menu = m
	c.markDirty(store.KeyCurrentMenu)
}

// SetBackupConfig replaces the backup settings singleton.
func (c *Container) SetBackupConfig(cfg models.BackupConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backupConfig = cfg
	c.markDirty(store.KeyBackupConfig)
}

// markDirty schedules a debounced save. Callers hold c.mu.
func (c *Container) markDirty(key string) {
	c.dirty[key] = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		if err := c.Flush(); err != nil {
			c.log.Warn("自動保存に失敗しました。データはメモリ上に保持されます", zap.Error(err))
		}
	})
}

// Flush persists every dirty collection now. Used by the debounce
// timer, on shutdown, and by tests.
func (c *Container) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked()
}

func (c *Container) flushLocked() error {
	var firstErr error
	for key := range c.dirty {
		var err error
		switch key {
		case store.KeyUsers:
			err = store.Save(c.store, key, c.users)
		case store.KeyMealRecords:
			err = store.Save(c.store, key, c.records)
		case store.KeyCurrentMenu:
			err = store.Save(c.store, key, c.menu)
		case store.KeyBackupConfig:
			err = store.Save(c.store, key, c.backupConfig)
		}
		if err != nil {
			// Keep the key dirty so the next flush retries it.
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		delete(c.dirty, key)
	}
	return firstErr
}

// Close stops the debounce timer and flushes outstanding changes.
func (c *Container) Close() error {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	err := c.flushLocked()
	c.mu.Unlock()
	return err
}
