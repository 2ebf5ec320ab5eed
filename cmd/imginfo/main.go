package main

import (
	"flag"
	"fmt"
	"github.com/SchnorcherSepp/dataprovider/decoder"
	impl "github.com/SchnorcherSepp/dataprovider/defaultimpl"
	"github.com/SchnorcherSepp/dataprovider/gdrive"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"io"
	"os"
)

var (
	directFlag = flag.Bool("direct", false, "register random access callbacks (default: sequential)")
	bufFlag    = flag.Int("buf", interf.DefaultBufferingSize, "buffering size in bytes")
	cacheFlag  = flag.Int("cache", 0, "sector cache in MB for random access (0: no cache)")
	decodeFlag = flag.Bool("decode", false, "decode the whole image, not only the header")
	debugFlag  = flag.Uint("debug", impl.DebugOff, "debug level (0, 1, 2)")
	credFlag   = flag.String("cred", "", "google drive client credentials (args are file ids)")
	tokenFlag  = flag.String("token", "token.json", "google drive oauth token")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("usage: imginfo [options] <file|file id>...")
		fmt.Println("options:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	conf := interf.DefaultConfig()
	conf.BufferingSize = *bufFlag
	conf.DebugLvl = uint8(*debugFlag)
	if *cacheFlag > 0 {
		conf.Cache = impl.NewCache(*cacheFlag)
	}

	var open func(name string) (*decoder.Source, error)
	if *credFlag != "" {
		srv, err := gdrive.OAuth(*credFlag, *tokenFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		open = func(id string) (*decoder.Source, error) {
			s, err := gdrive.NewStream(srv, id, conf.DebugLvl)
			if err != nil {
				return nil, err
			}
			c := conf
			c.Ownership = interf.Owned
			c.CacheId = "gdrive-" + id
			src, err := decoder.NewSource(s, *directFlag, interf.UnknownSize, c)
			if err != nil {
				_ = s.Close()
			}
			return src, err
		}
	} else {
		open = func(path string) (*decoder.Source, error) {
			return decoder.OpenFile(path, *directFlag, conf)
		}
	}

	failed := 0
	for _, name := range args {
		if err := info(os.Stdout, name, open, *decodeFlag); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(2)
	}
}

// info prints the format and the dimensions of one image.
func info(w io.Writer, name string, open func(string) (*decoder.Source, error), decode bool) error {
	src, err := open(name)
	if err != nil {
		return err
	}
	defer src.Release()

	cfg, format, err := src.DecodeConfig()
	if err != nil {
		return err
	}

	if decode {
		img, _, err := src.Decode()
		if err != nil {
			return err
		}
		b := img.Bounds()
		_, err = fmt.Fprintf(w, "%s: %s %dx%d (decoded)\n", name, format, b.Dx(), b.Dy())
		return err
	}

	_, err = fmt.Fprintf(w, "%s: %s %dx%d\n", name, format, cfg.Width, cfg.Height)
	return err
}
