package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"

	"staticscan/gen4"
)

type ResultWriter interface {
	Write(p []byte) (n int, err error)
	Close() error
	Sync() error
}

type ResultStore interface {
	GetWriter(name string) (ResultWriter, error)
}

// Compression names accepted for output.compress.
const (
	CompressNone   = "none"
	CompressLZ4    = "lz4"
	CompressSnappy = "snappy"
)

type FileResultStore struct {
	root     string
	compress string
}

func NewFileResultStore(root, compress string) (rs *FileResultStore, e error) {
	switch compress {
	case "", CompressNone:
		compress = CompressNone
	case CompressLZ4, CompressSnappy:
	default:
		e = fmt.Errorf("unknown compression '%s'; use none, lz4 or snappy", compress)
		return
	}

	if e = os.MkdirAll(root, 0755); e != nil {
		e = fmt.Errorf("cannot init result store: %s", e)
		return
	}

	rs = &FileResultStore{root, compress}
	return
}

// Path is where GetWriter(name) puts its file, compression suffix included.
func (f *FileResultStore) Path(name string) string {
	switch f.compress {
	case CompressLZ4:
		name += ".lz4"
	case CompressSnappy:
		name += ".sz"
	}
	return filepath.Join(f.root, name)
}

func (f *FileResultStore) GetWriter(name string) (ResultWriter, error) {
	file, err := os.OpenFile(f.Path(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)

	if err != nil {
		return nil, err
	}

	switch f.compress {
	case CompressLZ4:
		return &compressedWriter{lz4.NewWriter(file), file}, nil
	case CompressSnappy:
		return &compressedWriter{snappy.NewBufferedWriter(file), file}, nil
	default:
		return file, nil
	}
}

type flusher interface {
	Flush() error
}

// compressedWriter owns both the compressor and the file under it.
type compressedWriter struct {
	io.WriteCloser
	file *os.File
}

// Sync pushes out what the compressor has buffered, if it can say so
// mid-stream, then syncs the file.
func (w *compressedWriter) Sync() error {
	if f, ok := w.WriteCloser.(flusher); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	return w.file.Sync()
}

func (w *compressedWriter) Close() error {
	if err := w.WriteCloser.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

var resultHeader = []string{
	"Seed", "Advances", "PID", "Shiny", "Nature", "Ability", "Gender",
	"HP", "Atk", "Def", "SpA", "SpD", "Spe",
	"Hidden Power", "Power", "Characteristic",
	"HPStat", "AtkStat", "DefStat", "SpAStat", "SpDStat", "SpeStat",
	"PRNG", "Next",
}

// WriteResults writes one row per state. Results must already be in output
// order; a nil entry stands for a job with no matches.
func WriteResults(store ResultStore, name string, results []*JobResult) (rows int, e error) {
	wr, e := store.GetWriter(name)

	if e != nil {
		return 0, fmt.Errorf("cannot get result writer: %s", e)
	}

	defer func() {
		if e == nil {
			e = wr.Close()
		} else {
			_ = wr.Close() // attempt to close, but don't nuke existing error
		}
	}()

	rows, e = writeCSV(wr, results)

	if e == nil {
		e = wr.Sync()
	}

	return
}

func writeCSV(w io.Writer, results []*JobResult) (int, error) {
	cw := csv.NewWriter(w)
	rows := 0

	if err := cw.Write(resultHeader); err != nil {
		return 0, err
	}

	for _, res := range results {
		if res == nil {
			continue
		}
		for i := range res.States {
			if err := cw.Write(stateRecord(res.Job.Seed, &res.States[i])); err != nil {
				return rows, err
			}
			rows++
		}
	}

	cw.Flush()
	return rows, cw.Error()
}

func stateRecord(seed uint32, s *gen4.State) []string {
	rec := make([]string, 0, len(resultHeader))

	rec = append(rec,
		fmt.Sprintf("%08X", seed),
		strconv.FormatUint(uint64(s.Advances), 10),
		fmt.Sprintf("%08X", s.PID),
		s.Shiny.String(),
		gen4.NatureName(s.Nature),
		fmt.Sprintf("%d: %s", s.Ability, s.AbilityName),
		s.Gender.String(),
	)

	for _, iv := range s.IVs {
		rec = append(rec, strconv.Itoa(int(iv)))
	}

	rec = append(rec,
		gen4.HiddenPowerName(s.HiddenPower),
		strconv.Itoa(int(s.HiddenPowerStrength)),
		strconv.Itoa(int(s.Characteristic)),
	)

	for _, stat := range s.Stats {
		rec = append(rec, strconv.Itoa(int(stat)))
	}

	rec = append(rec,
		fmt.Sprintf("%04X", s.PRNG),
		fmt.Sprintf("%04X", s.Next),
	)

	return rec
}
