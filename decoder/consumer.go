package decoder

import (
	"errors"
	"fmt"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
)

// interface check: interf.Consumer
var _ interf.Consumer = (*_Consumer)(nil)

// @see interf.Consumer
//
// Consumer decodes images from registered callback sets. It returns a *Source for every registration.
type _Consumer struct {
	debugLvl uint8 // enable debug logging [0, 1, 2] (level: high=2)
}

// NewConsumer returns the image decoding consumer.
func NewConsumer(debugLvl uint8) interf.Consumer {
	return &_Consumer{
		debugLvl: debugLvl,
	}
}

// @see interf.Consumer
func (c *_Consumer) CreateSequential(cb interf.SequentialCallbacks) (interf.Provider, error) {
	if cb == nil {
		return nil, errors.New("decoder/CreateSequential: no callbacks")
	}
	return newSource(cb, nil, interf.UnknownSize, c.debugLvl), nil
}

// @see interf.Consumer
func (c *_Consumer) CreateDirect(size int64, cb interf.DirectCallbacks) (interf.Provider, error) {
	if cb == nil {
		return nil, errors.New("decoder/CreateDirect: no callbacks")
	}
	if size < 0 {
		return nil, fmt.Errorf("decoder/CreateDirect: invalid size %d", size)
	}
	return newSource(nil, cb, size, c.debugLvl), nil
}
