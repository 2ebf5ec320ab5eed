package gdrive

import (
	"errors"
	"fmt"
	impl "github.com/SchnorcherSepp/dataprovider/defaultimpl"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	google "google.golang.org/api/drive/v3"
	"io"
	"log"
	"os"
	"sync"
)

// packageName is the prefix of all log messages
const packageName = "gdrive"

const folderMimeType = "application/vnd.google-apps.folder"

// opener opens a download of n bytes starting at the offset off.
type opener func(off, n int64) (io.ReadCloser, error)

// interface check: interf.Stream
var _ interf.Stream = (*_Stream)(nil)
var _ interf.Capabilities = (*_Stream)(nil)

// _Stream is a seekable read-only stream of a Google Drive file.
// Seeking is virtual: the open download is dropped when the position moves away
// and the next Read opens a new ranged download at the current position.
// Must be created with NewStream().
type _Stream struct {
	mux      *sync.Mutex   // protect the position and the download
	id       string        // google drive file id
	size     int64         // file size from the metadata
	pos      int64         // virtual position
	open     opener        // ranged download
	body     io.ReadCloser // open download, nil if none
	bodyPos  int64         // position of the open download
	closed   bool          // see Close
	debugLvl uint8         // enable debug logging [0, 1, 2] (level: high=2)
}

// NewStream returns a stream of the Google Drive file identified by the file id.
// The size and the name are requested once from the file metadata, the content is downloaded on demand.
// Folders and google docs (no size) are not supported.
// debugLvl (@see impl.DebugHigh and impl.DebugOff)
func NewStream(srv *google.Service, fileId string, debugLvl uint8) (interf.Stream, error) {
	if srv == nil {
		return nil, errors.New("gdrive/NewStream: no service")
	}

	// metadata
	f, err := srv.Files.Get(fileId).Fields("id, name, size, mimeType, modifiedTime").Do()
	if err != nil {
		return nil, fmt.Errorf("gdrive/NewStream: %v", err)
	}
	if f.MimeType == folderMimeType {
		return nil, fmt.Errorf("gdrive/NewStream: %s is a folder", fileId)
	}

	if debugLvl >= impl.DebugLow { // Debug level: low=1
		log.Printf("DEBUG: %s/NewStream: id=%s, name=%s, size=%d, mimeType=%s, modified=%v",
			packageName, f.Id, f.Name, f.Size, f.MimeType, parseTime(f.ModifiedTime))
	}
	return newStream(f.Id, f.Size, downloader(srv, f.Id), debugLvl), nil
}

func newStream(id string, size int64, open opener, debugLvl uint8) *_Stream {
	return &_Stream{
		mux:      new(sync.Mutex),
		id:       id,
		size:     size,
		open:     open,
		debugLvl: debugLvl,
	}
}

// downloader opens ranged downloads of the file content.
func downloader(srv *google.Service, id string) opener {
	return func(off, n int64) (io.ReadCloser, error) {
		get := srv.Files.Get(id)
		get.Header().Set("Range", rangeHeader(off, n))

		resp, err := get.Download()
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	}
}

// rangeHeader returns the value of the http range header for n bytes starting at off.
func rangeHeader(off, n int64) string {
	return fmt.Sprintf("bytes=%d-%d", off, off+n-1)
}

//--------------------------------------------------------------------------------------------------------------------//

// Read reads from the open download or opens a new one at the current position.
// This method is thread-safe.
func (s *_Stream) Read(p []byte) (int, error) {
	s.mux.Lock() // LOCK
	defer s.mux.Unlock()

	if s.closed {
		return 0, os.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if s.pos >= s.size {
		s.drop()
		return 0, io.EOF
	}

	// the position was moved
	if s.body != nil && s.bodyPos != s.pos {
		s.drop()
	}

	// new download
	if s.body == nil {
		body, err := s.open(s.pos, s.size-s.pos)
		if err != nil {
			return 0, fmt.Errorf("gdrive/Read: %v", err)
		}
		if s.debugLvl >= impl.DebugHigh { // Debug level: high=2
			log.Printf("DEBUG: %s/Read: id=%s, open download at %d", packageName, s.id, s.pos)
		}
		s.body = body
		s.bodyPos = s.pos
	}

	// read
	if rest := s.size - s.pos; int64(len(p)) > rest {
		p = p[:rest]
	}
	n, err := s.body.Read(p)
	s.pos += int64(n)
	s.bodyPos = s.pos

	switch {
	case err == io.EOF && s.pos < s.size:
		// connection ended before the end of the file: the next read opens a new download
		s.drop()
		if n == 0 {
			return 0, io.ErrUnexpectedEOF
		}
		return n, nil
	case err == io.EOF:
		s.drop()
		return n, nil
	case err != nil:
		s.drop()
		return n, fmt.Errorf("gdrive/Read: %v", err)
	}
	return n, nil
}

// Seek sets the virtual position. There is no network access.
// This method is thread-safe.
func (s *_Stream) Seek(offset int64, whence int) (int64, error) {
	s.mux.Lock() // LOCK
	defer s.mux.Unlock()

	if s.closed {
		return 0, os.ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.pos + offset
	case io.SeekEnd:
		abs = s.size + offset
	default:
		return 0, errors.New("gdrive/Seek: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("gdrive/Seek: negative position")
	}

	s.pos = abs
	return abs, nil
}

// Close closes the open download. Further calls do nothing.
// This method is thread-safe.
func (s *_Stream) Close() error {
	s.mux.Lock() // LOCK
	defer s.mux.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.body == nil {
		return nil
	}
	err := s.body.Close()
	s.body = nil
	return err
}

// CanRead is false after Close.
func (s *_Stream) CanRead() bool {
	s.mux.Lock() // LOCK
	defer s.mux.Unlock()
	return !s.closed
}

// CanSeek is false after Close.
func (s *_Stream) CanSeek() bool {
	return s.CanRead()
}

// drop closes the open download. Caller must hold the lock.
func (s *_Stream) drop() {
	if s.body == nil {
		return
	}
	if err := s.body.Close(); err != nil {
		log.Printf("WARNING: %s/drop: id=%s: %v", packageName, s.id, err)
	}
	s.body = nil
}
