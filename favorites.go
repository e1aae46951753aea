package coinfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// FavoritesFile is the name of the favorites file in a data directory.
const FavoritesFile = "favorites.json"

// Favorites is an ordered set of coin identifiers.
type Favorites struct {
	ids []string
}

// NewFavorites returns the favorites made of ids, without duplicates.
func NewFavorites(ids ...string) *Favorites {
	f := &Favorites{}
	for _, id := range ids {
		f.Add(id)
	}
	return f
}

// Add appends id if it is not already a favorite, and reports whether it was added.
func (f *Favorites) Add(id string) bool {
	if id == "" || f.Has(id) {
		return false
	}
	f.ids = append(f.ids, id)
	return true
}

// Remove removes id and reports whether it was a favorite.
func (f *Favorites) Remove(id string) bool {
	i := slices.Index(f.ids, id)
	if i < 0 {
		return false
	}
	f.ids = slices.Delete(f.ids, i, i+1)
	return true
}

// Toggle adds id when it is not a favorite, removes it otherwise. It
// reports whether id is a favorite afterwards.
func (f *Favorites) Toggle(id string) bool {
	if f.Remove(id) {
		return false
	}
	return f.Add(id)
}

func (f *Favorites) Has(id string) bool { return slices.Contains(f.ids, id) }
func (f *Favorites) Len() int           { return len(f.ids) }

// IDs returns a copy of the favorites in insertion order.
func (f *Favorites) IDs() []string { return slices.Clone(f.ids) }

// LoadFavorites reads the favorites file of a data directory. A missing
// file gives no favorites.
func LoadFavorites(dir string) (*Favorites, error) {
	data, err := os.ReadFile(filepath.Join(dir, FavoritesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return NewFavorites(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read favorites: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("could not decode favorites: %w", err)
	}
	return NewFavorites(ids...), nil
}

// SaveFavorites writes the favorites file of a data directory as a JSON array.
func SaveFavorites(dir string, f *Favorites) error {
	ids := f.IDs()
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("could not encode favorites: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FavoritesFile), data, 0o644); err != nil {
		return fmt.Errorf("could not save favorites: %w", err)
	}
	return nil
}
