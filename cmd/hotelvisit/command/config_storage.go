package command

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-hotelvisit/data"
	"github.com/pixil98/go-hotelvisit/internal/commands"
	"github.com/pixil98/go-hotelvisit/internal/storage"
	"github.com/pixil98/go-hotelvisit/internal/tour"
)

// StorageConfig points at asset directories. An empty path uses the hotel
// built into the binary.
type StorageConfig struct {
	Rooms    AssetConfig[*tour.Room]        `json:"rooms"`
	Commands AssetConfig[*commands.Command] `json:"commands"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.validate("rooms"))
	el.Add(c.Commands.validate("commands"))
	return el.Err()
}

func (c *StorageConfig) BuildRoomStore() (*storage.FileStore[*tour.Room], error) {
	return c.Rooms.BuildFileStore(data.Rooms())
}

func (c *StorageConfig) BuildCommandStore() (*storage.FileStore[*commands.Command], error) {
	return c.Commands.BuildFileStore(data.Commands())
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) validate(name string) error {
	if c.Path == "" {
		return nil
	}
	info, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: path %q is not a directory", name, c.Path)
	}
	return nil
}

// BuildFileStore loads the assets under Path, or from builtin when no path
// is set.
func (c *AssetConfig[T]) BuildFileStore(builtin fs.FS) (*storage.FileStore[T], error) {
	fsys := builtin
	if c.Path != "" {
		fsys = os.DirFS(c.Path)
	}
	return storage.NewFileStore[T](fsys)
}
