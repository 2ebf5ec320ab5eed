package impl

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync/atomic"
)

// DebugOff deactivates all debug messages. Errors, warnings or information are still printed.
const DebugOff = 0

// DebugLow shows debug messages that happen very rarely during operation (to keep the log files small).
const DebugLow = 1

// DebugHigh shows all debug messages.
const DebugHigh = 2

//--------------------------------------------------------------------------------------------------------------------//

type _ProviderStat struct {
	debugLvl    uint8  // enable debug logging [0, 1, 2] (level: high=2)
	packageName string // text for debug logging

	_ProvNew     uint64
	_ProvRelease uint64
	_StreamClose uint64
	_GetReq      uint64
	_GetRound    uint64
	_GetShort    uint64
	_GetErr      uint64
	_SkipReq     uint64
	_RewindReq   uint64
	_SeekErr     uint64
	_PosReq      uint64
	_PtrReq      uint64
	_CacheHit    uint64
	_CacheMis    uint64
	_CacheSet    uint64
	_LateCall    uint64
}

func newProviderStat(debugLvl uint8, packageName string) *_ProviderStat {
	return &_ProviderStat{
		debugLvl:    debugLvl,
		packageName: packageName,
	}
}

func (s *_ProviderStat) Stat() map[string]uint64 {
	ret := map[string]uint64{
		"ProvNew":     atomic.LoadUint64(&s._ProvNew),
		"ProvRelease": atomic.LoadUint64(&s._ProvRelease),
		"StreamClose": atomic.LoadUint64(&s._StreamClose),
		"GetReq":      atomic.LoadUint64(&s._GetReq),
		"GetRound":    atomic.LoadUint64(&s._GetRound),
		"GetShort":    atomic.LoadUint64(&s._GetShort),
		"GetErr":      atomic.LoadUint64(&s._GetErr),
		"SkipReq":     atomic.LoadUint64(&s._SkipReq),
		"RewindReq":   atomic.LoadUint64(&s._RewindReq),
		"SeekErr":     atomic.LoadUint64(&s._SeekErr),
		"PosReq":      atomic.LoadUint64(&s._PosReq),
		"PtrReq":      atomic.LoadUint64(&s._PtrReq),
		"CacheHit":    atomic.LoadUint64(&s._CacheHit),
		"CacheMis":    atomic.LoadUint64(&s._CacheMis),
		"CacheSet":    atomic.LoadUint64(&s._CacheSet),
		"LateCall":    atomic.LoadUint64(&s._LateCall),
	}

	// ignore zero values
	for k, v := range ret {
		if v == 0 {
			delete(ret, k)
		}
	}
	return ret
}

func (s *_ProviderStat) PrintStatAfterRelease(id string) {
	// final call in ReleaseInfo()

	stat := s.Stat()
	keys := make([]string, 0, len(stat))
	for k := range stat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(fmt.Sprintf("%d", stat[k]))
	}

	if s.debugLvl >= DebugLow { // Debug level: low=1
		log.Printf("DEBUG: %s/stat.PrintStatAfterRelease: id=%s: %s", s.packageName, id, sb.String())
	}
}

// ------------------------------------------------------------------------------------------------------------------ //

func (s *_ProviderStat) ProvNew(id string, kind string, size int64, own fmt.Stringer, bufSize int) {
	atomic.AddUint64(&s._ProvNew, 1)
	if s.debugLvl >= DebugLow { // Debug level: low=1
		log.Printf("DEBUG: %s/stat.ProvNew: id=%s, kind=%s, size=%d, stream=%v, buffering=%d", s.packageName, id, kind, size, own, bufSize)
	}
}

func (s *_ProviderStat) ProvRelease(id string, first bool) {
	if !first {
		log.Printf("WARNING: %s/stat.ProvRelease: id=%s: provider is already released", s.packageName, id)
		return
	}
	atomic.AddUint64(&s._ProvRelease, 1)
	if s.debugLvl >= DebugHigh { // Debug level: high=2
		log.Printf("DEBUG: %s/stat.ProvRelease: id=%s", s.packageName, id)
	}
}

func (s *_ProviderStat) StreamClose(id string, err error) {
	atomic.AddUint64(&s._StreamClose, 1)
	if s.debugLvl >= DebugHigh || err != nil {
		pre := "DEBUG" // Debug level: high=2
		if err != nil {
			pre = "ERROR" // Debug level: error=0
		}
		log.Printf("%s: %s/stat.StreamClose: id=%s, err=%v", pre, s.packageName, id, err)
	}
}

func (s *_ProviderStat) GetReq(id string, pos int64, req int) {
	atomic.AddUint64(&s._GetReq, 1)
	if s.debugLvl >= DebugHigh { // Debug level: high=2
		log.Printf("DEBUG: %s/stat.GetReq: id=%s, pos=%d, req=%d", s.packageName, id, pos, req)
	}
}

func (s *_ProviderStat) GetRound(id string, req, n int) {
	atomic.AddUint64(&s._GetRound, 1)
	if s.debugLvl >= DebugHigh { // Debug level: high=2
		log.Printf("DEBUG: %s/stat.GetRound: id=%s, round=%d/%d", s.packageName, id, n, req)
	}
}

func (s *_ProviderStat) GetRet(id string, req, ret int, err error) {
	if ret < req {
		atomic.AddUint64(&s._GetShort, 1)
	}
	if err != nil && err != io.EOF {
		atomic.AddUint64(&s._GetErr, 1)
		log.Printf("ERROR: %s/stat.GetRet: id=%s, req=%d, ret=%d, err=%v", s.packageName, id, req, ret, err)
		return
	}
	if s.debugLvl >= DebugHigh { // Debug level: high=2
		log.Printf("DEBUG: %s/stat.GetRet: id=%s, req=%d, ret=%d, err=%v", s.packageName, id, req, ret, err)
	}
}

func (s *_ProviderStat) SkipReq(id string, count int64) {
	atomic.AddUint64(&s._SkipReq, 1)
	if s.debugLvl >= DebugHigh { // Debug level: high=2
		log.Printf("DEBUG: %s/stat.SkipReq: id=%s, count=%d", s.packageName, id, count)
	}
}

func (s *_ProviderStat) RewindReq(id string) {
	atomic.AddUint64(&s._RewindReq, 1)
	if s.debugLvl >= DebugHigh { // Debug level: high=2
		log.Printf("DEBUG: %s/stat.RewindReq: id=%s", s.packageName, id)
	}
}

func (s *_ProviderStat) SeekErr(id string, pos int64, whence int, err error) {
	atomic.AddUint64(&s._SeekErr, 1)
	log.Printf("ERROR: %s/stat.SeekErr: id=%s, pos=%d, whence=%d, err=%v", s.packageName, id, pos, whence, err)
}

func (s *_ProviderStat) PosReq(id string, pos int64, req int) {
	atomic.AddUint64(&s._PosReq, 1)
	if s.debugLvl >= DebugHigh { // Debug level: high=2
		log.Printf("DEBUG: %s/stat.PosReq: id=%s, pos=%d, req=%d", s.packageName, id, pos, req)
	}
}

func (s *_ProviderStat) PtrReq(id string) {
	atomic.AddUint64(&s._PtrReq, 1)
	if s.debugLvl >= DebugHigh { // Debug level: high=2
		log.Printf("DEBUG: %s/stat.PtrReq: id=%s, supported=false", s.packageName, id)
	}
}

func (s *_ProviderStat) CacheGet(id string, sector uint64, retLen int, err error) {
	if err == nil {
		atomic.AddUint64(&s._CacheHit, 1)
	} else {
		atomic.AddUint64(&s._CacheMis, 1)
	}
	if s.debugLvl >= DebugHigh { // Debug level: high=2
		log.Printf("DEBUG: %s/stat.CacheGet: id=%s, sector=%d, ret=%d, err=%v", s.packageName, id, sector, retLen, err)
	}
}

func (s *_ProviderStat) CacheSet(id string, sector uint64, data int, err error) {
	atomic.AddUint64(&s._CacheSet, 1)
	if s.debugLvl >= DebugHigh || err != nil {
		pre := "DEBUG" // Debug level: high=2
		if err != nil {
			pre = "ERROR" // Debug level: error=0
		}
		log.Printf("%s: %s/stat.CacheSet: id=%s, sector=%d, data=%d, err=%v", pre, s.packageName, id, sector, data, err)
	}
}

func (s *_ProviderStat) LateCall(id string, call string) {
	atomic.AddUint64(&s._LateCall, 1)
	log.Printf("WARNING: %s/stat.LateCall: id=%s: %s after ReleaseInfo", s.packageName, id, call)
}
