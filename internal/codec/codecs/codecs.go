// Package codecs looks up transcript codecs by name.
package codecs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/discochess/uci/internal/codec"
	"github.com/discochess/uci/internal/codec/gzipcodec"
	"github.com/discochess/uci/internal/codec/noopcodec"
	"github.com/discochess/uci/internal/codec/zstdcodec"
)

// ErrUnknown is returned by ByName for names no codec answers to.
var ErrUnknown = errors.New("codecs: unknown codec")

var all = []codec.Codec{noopcodec.New(), gzipcodec.New(), zstdcodec.New()}

// ByName returns the codec whose Name is name. The empty name selects no
// compression.
func ByName(name string) (codec.Codec, error) {
	if name == "" {
		name = "none"
	}
	for _, c := range all {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknown, name, strings.Join(Names(), ", "))
}

// ByExtension returns the codec that writes files ending in "."+ext. The
// empty extension selects no compression.
func ByExtension(ext string) (codec.Codec, bool) {
	for _, c := range all {
		if c.Extension() == ext {
			return c, true
		}
	}
	return nil, false
}

// Names lists the known codec names.
func Names() []string {
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name()
	}
	return names
}
