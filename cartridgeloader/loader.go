// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the gnu general public license as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package cartridgeloader

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gba7tdmi/curated"
	"github.com/jetsetilly/gba7tdmi/logger"
)

// Loader abstracts the ways ROM or BIOS data can be loaded into the
// emulation.
type Loader struct {
	io.ReadSeeker

	// the name to use for the cartridge represented by Loader
	Name string

	// filename this Loader was created from. For embedded data this holds
	// the name passed to NewLoaderFromData.
	Filename string

	// expected hash of the loaded data. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data.
	HashSHA1 string

	// ROM/BIOS data. empty until Open() is called unless the loader was
	// created by NewLoaderFromData.
	//
	// the pointer-to-a-slice construct allows the cartridge to be
	// loaded/changed by a Loader instance that has been passed by value.
	Data *[]byte

	data *bytes.Reader

	// whether the Loader was created with NewLoaderFromData
	embedded bool
}

// NoFilename is returned when a Loader is requested with an empty or
// whitespace-only filename.
var NoFilename = errors.New("no filename")

// NewLoaderFromFilename is the preferred method of initialisation when
// loading data from disk.
func NewLoaderFromFilename(filename string) (Loader, error) {
	if strings.TrimSpace(filename) == "" {
		return Loader{}, curated.Errorf("cartridgeloader: %v", NoFilename)
	}

	filename, err := filepath.Abs(filename)
	if err != nil {
		return Loader{}, curated.Errorf("cartridgeloader: %v", err)
	}

	ld := Loader{Filename: filename}
	data := make([]byte, 0)
	ld.Data = &data
	ld.Name = decideOnName(ld)

	return ld, nil
}

// NewLoaderFromData is the preferred method of initialisation when
// loading data from a byte slice, e.g. data embedded with go:embed.
func NewLoaderFromData(name string, data []byte) (Loader, error) {
	if len(data) == 0 {
		return Loader{}, curated.Errorf("cartridgeloader: embedded data is empty")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Loader{}, curated.Errorf("cartridgeloader: no name for embedded data")
	}

	ld := Loader{
		Filename: name,
		Data:     &data,
		data:     bytes.NewReader(data),
		embedded: true,
		HashSHA1: fmt.Sprintf("%x", sha1.Sum(data)),
	}
	ld.Name = decideOnName(ld)

	return ld, nil
}

// Close is a no-op for file-backed loaders (Open reads the whole file
// eagerly); it exists so Loader satisfies io.Closer.
func (ld Loader) Close() error { return nil }

// Read implements io.Reader.
func (ld Loader) Read(p []byte) (int, error) {
	return ld.data.Read(p)
}

// Seek implements io.Seeker.
func (ld Loader) Seek(offset int64, whence int) (int64, error) {
	return ld.data.Seek(offset, whence)
}

// Open reads the cartridge data, verifying it against HashSHA1 if that
// field was populated beforehand.
func (ld *Loader) Open() error {
	if ld.embedded {
		return nil
	}

	if ld.Data != nil && len(*ld.Data) > 0 {
		return nil
	}

	f, err := os.Open(ld.Filename)
	if err != nil {
		return curated.Errorf("cartridgeloader: %v", err)
	}
	defer f.Close()

	*ld.Data, err = io.ReadAll(f)
	if err != nil {
		return curated.Errorf("cartridgeloader: %v", err)
	}

	ld.data = bytes.NewReader(*ld.Data)

	hash := fmt.Sprintf("%x", sha1.Sum(*ld.Data))
	if ld.HashSHA1 != "" && ld.HashSHA1 != hash {
		return curated.Errorf("cartridgeloader: unexpected SHA1 hash value")
	}
	ld.HashSHA1 = hash

	logger.Logf(logger.Allow, "loader", "loaded %s (%d bytes, sha1 %s)", ld.Filename, len(*ld.Data), hash)

	return nil
}
