// Package texture loads skin and cape images and derives thumbnails and
// template atlases from them.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"github.com/Faultbox/skinview/pkg/skin"
)

// ErrUnknownFormat is returned when image data matches no supported
// decoder.
var ErrUnknownFormat = errors.New("unknown image format")

// decoders maps sniffed types to their decoders. The image package
// registry is not used: tga registers with an empty magic string and would
// claim every input.
var decoders = map[types.Type]func(io.Reader) (image.Image, error){
	matchers.TypePng:  png.Decode,
	matchers.TypeJpeg: jpeg.Decode,
	matchers.TypeGif:  gif.Decode,
	matchers.TypeBmp:  bmp.Decode,
	matchers.TypeWebp: webp.Decode,
}

// Decode sniffs data and decodes it. TGA has no magic number, so it is
// tried when the name hint ends in .tga or when sniffing finds nothing.
func Decode(data []byte, hint string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(hint), ".tga") {
		return decodeTGA(data)
	}

	kind, _ := filetype.Match(data)
	if kind == filetype.Unknown {
		img, err := decodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, hint)
		}
		return img, nil
	}
	decode, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnknownFormat, hint, kind.MIME.Value)
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s (%s): %w", hint, kind.Extension, err)
	}
	return img, nil
}

func decodeTGA(data []byte) (image.Image, error) {
	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding tga: %w", err)
	}
	return img, nil
}

// LoadSkin reads and validates a skin. Legacy 64x32 skins are upgraded to
// the 64x64 layout.
func LoadSkin(path string) (*skin.Texture, error) {
	t, err := load(path)
	if err != nil {
		return nil, err
	}
	return ParseSkin(t)
}

// LoadCape reads and validates a cape.
func LoadCape(path string) (*skin.Texture, error) {
	t, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := skin.ValidateCape(t); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseSkin validates a decoded skin and upgrades legacy layouts.
func ParseSkin(t *skin.Texture) (*skin.Texture, error) {
	if err := skin.ValidateSkin(t); err != nil {
		return nil, err
	}
	return skin.UpgradeLegacy(t), nil
}

func load(path string) (*skin.Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	img, err := Decode(data, path)
	if err != nil {
		return nil, err
	}
	return skin.NewTexture(img), nil
}
