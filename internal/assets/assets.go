// Package assets loads skins from catalogs and watches skin files on disk.
package assets

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/logger"
	"github.com/Faultbox/skinview/pkg/skin"
)

// ErrNotFound is returned when no catalog holds the requested skin.
var ErrNotFound = errors.New("skin not found")

// Catalog is a skins.json file: base64 PNG templates per arm style plus
// named default skins.
type Catalog struct {
	Template map[string]string            `json:"template"`
	Default  map[string]map[string]string `json:"default"`
}

// ReadCatalog parses a catalog file.
func ReadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return &c, nil
}

// Arms returns the catalog key for an arm style.
func Arms(slim bool) string {
	if slim {
		return "slim"
	}
	return "classic"
}

// TemplateKey names the template entry for an arm style.
func TemplateKey(slim bool) string { return "template/" + Arms(slim) }

// DefaultKey names a default skin entry.
func DefaultKey(name string, slim bool) string { return "default/" + name + "/" + Arms(slim) }

func (c *Catalog) lookup(key string) (string, bool) {
	f := strings.Split(key, "/")
	switch {
	case len(f) == 2 && f[0] == "template":
		s, ok := c.Template[f[1]]
		return s, ok
	case len(f) == 3 && f[0] == "default":
		s, ok := c.Default[f[1]][f[2]]
		return s, ok
	}
	return "", false
}

// Manager resolves skins from catalogs. Catalogs are searched in reverse
// order (last added = highest priority); decoded PNG bytes are cached.
type Manager struct {
	catalogs []*Catalog
	cache    *Cache
	mu       sync.RWMutex
	log      *zap.Logger
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
		log:   logger.Named("assets"),
	}
}

// AddCatalog reads a catalog file and adds it to the search list.
func (m *Manager) AddCatalog(path string) error {
	c, err := ReadCatalog(path)
	if err != nil {
		return err
	}
	m.Add(c)
	m.log.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("templates", len(c.Template)),
		zap.Int("defaults", len(c.Default)))
	return nil
}

// Add appends an already parsed catalog.
func (m *Manager) Add(c *Catalog) {
	m.mu.Lock()
	m.catalogs = append(m.catalogs, c)
	m.mu.Unlock()
}

// Load returns the PNG bytes stored under key.
func (m *Manager) Load(key string) ([]byte, error) {
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.catalogs) - 1; i >= 0; i-- {
		encoded, ok := m.catalogs[i].lookup(key)
		if !ok {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}
		m.cache.Set(key, data)
		return data, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// Template returns the template skin for an arm style. Without a catalog
// entry the procedural template is used.
func (m *Manager) Template(slim bool) (*skin.Texture, error) {
	t, err := m.texture(TemplateKey(slim))
	if errors.Is(err, ErrNotFound) {
		return texture.Template(slim), nil
	}
	return t, err
}

// Default returns a named default skin.
func (m *Manager) Default(name string, slim bool) (*skin.Texture, error) {
	return m.texture(DefaultKey(name, slim))
}

// Names lists the default skins of every catalog, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var names []string
	for _, c := range m.catalogs {
		for name := range c.Default {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (m *Manager) texture(key string) (*skin.Texture, error) {
	data, err := m.Load(key)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(data, key+".png")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return texture.ParseSkin(skin.NewTexture(img))
}

// Close drops every catalog and the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogs = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for decoded catalog entries.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
