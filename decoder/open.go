package decoder

import (
	"fmt"
	impl "github.com/SchnorcherSepp/dataprovider/defaultimpl"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"io"
	"os"
)

// NewSource creates a provider for the stream and registers it with a new decoder consumer.
// direct=true registers random access callbacks with the given size (interf.UnknownSize measures the stream),
// otherwise sequential callbacks. Release the source after use.
func NewSource(stream io.Reader, direct bool, size int64, conf interf.Config) (*Source, error) {
	c := NewConsumer(conf.DebugLvl)

	var p interf.Provider
	var err error
	if direct {
		p, err = impl.NewDirectProvider(c, stream, size, conf)
	} else {
		p, err = impl.NewSequentialProvider(c, stream, conf)
	}
	if err != nil {
		return nil, err
	}

	return p.(*Source), nil
}

// OpenFile opens the file and returns a source that owns it: Release closes the file.
func OpenFile(path string, direct bool, conf interf.Config) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoder/OpenFile: %v", err)
	}

	conf.Ownership = interf.Owned
	s, err := NewSource(f, direct, interf.UnknownSize, conf)
	if err != nil {
		_ = f.Close() // not owned by anybody
		return nil, fmt.Errorf("decoder/OpenFile: %w", err)
	}
	return s, nil
}
