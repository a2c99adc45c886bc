/*
Package dictionary loads scored vocabularies into a ranked index.

Two on-disk formats are understood. Chunk files are named dict_NNNN.bin and
hold a little-endian int32 entry count followed by entries of

	uint16 word length | word bytes | uint16 rank

where rank 1 is the most frequent word. Ranks are turned into scores as
65536 - rank so that better ranks score higher.

Text files hold one entry per line:

	# comment
	hello 120
	world

A missing score means 0.
*/
package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// maxRankScore turns a rank into a score.
const maxRankScore = 65536

// Inserter receives loaded words. *trie.Trie satisfies it.
type Inserter interface {
	InsertWithScore(word string, score int64)
}

// Entry is one word read from or written to a dictionary file.
type Entry struct {
	Word string
	Rank uint16
}

// Score converts the rank to an index score.
func (e Entry) Score() int64 {
	return maxRankScore - int64(e.Rank)
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// Stats describes a finished load.
type Stats struct {
	Files    int
	Words    int
	MaxScore int64
	Skipped  []string
}

// Loader feeds dictionary files into an Inserter.
type Loader struct {
	sink     Inserter
	maxWords int
	stats    Stats
}

// NewLoader creates a loader stopping after maxWords words (0 loads all).
func NewLoader(sink Inserter, maxWords int) *Loader {
	return &Loader{sink: sink, maxWords: maxWords}
}

// Stats returns what has been loaded so far.
func (l *Loader) Stats() Stats {
	return l.stats
}

func (l *Loader) full() bool {
	return l.maxWords > 0 && l.stats.Words >= l.maxWords
}

func (l *Loader) add(word string, score int64) {
	if l.stats.Words == 0 || score > l.stats.MaxScore {
		l.stats.MaxScore = score
	}
	l.sink.InsertWithScore(word, score)
	l.stats.Words++
}

// AvailableChunks scans dir for chunk files sorted by id.
func AvailableChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file, WordCount: wordCount})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// LoadDir loads every chunk file in id order, then every .txt file in name
// order, until the word limit is reached.
func (l *Loader) LoadDir(dir string) (Stats, error) {
	chunks, err := AvailableChunks(dir)
	if err != nil {
		return l.stats, err
	}
	texts, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return l.stats, fmt.Errorf("failed to scan for text files: %w", err)
	}
	sort.Strings(texts)

	if len(chunks) == 0 && len(texts) == 0 {
		return l.stats, fmt.Errorf("no dictionary files found in %s", dir)
	}
	log.Debugf("Found %d chunk files and %d text files in %s", len(chunks), len(texts), dir)

	files := make([]string, 0, len(chunks)+len(texts))
	for _, c := range chunks {
		files = append(files, c.Filename)
	}
	files = append(files, texts...)

	for _, file := range files {
		if l.full() {
			break
		}
		if err := l.LoadFile(file); err != nil {
			log.Errorf("Skipping %s: %v", file, err)
			l.stats.Skipped = append(l.stats.Skipped, file)
		}
	}
	return l.stats, nil
}

// LoadFile loads a single chunk or text file.
func (l *Loader) LoadFile(filename string) error {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return err
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	before := l.stats.Words
	switch format {
	case FormatChunk:
		err = l.LoadChunk(file)
	case FormatText:
		err = l.LoadText(file)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	l.stats.Files++
	log.Debugf("Loaded %d words from %s", l.stats.Words-before, filename)
	return nil
}

// LoadChunk reads one binary chunk.
func (l *Loader) LoadChunk(r io.Reader) error {
	reader := bufio.NewReader(r)

	total, err := readHeader(reader)
	if err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}

	for i := 0; i < total && !l.full(); i++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				log.Warnf("Chunk ended after %d of %d entries", i, total)
				return nil
			}
			return fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return fmt.Errorf("failed to read rank: %w", err)
		}

		e := Entry{Word: string(wordBytes), Rank: rank}
		l.add(e.Word, e.Score())
	}
	return nil
}

// LoadText reads "word [score]" lines.
func (l *Loader) LoadText(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() && !l.full() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		var score int64
		if len(fields) > 1 {
			s, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return fmt.Errorf("line %d: invalid score %q: %w", lineNo, fields[1], err)
			}
			score = s
		}
		l.add(fields[0], score)
	}
	return scanner.Err()
}

// WriteChunk encodes entries in the chunk format.
func WriteChunk(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if len(e.Word) > 0xFFFF {
			return fmt.Errorf("word too long: %d bytes", len(e.Word))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(e.Word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(e.Word); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, e.Rank); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteChunkFile writes entries to dir/dict_NNNN.bin.
func WriteChunkFile(dir string, chunkID int, entries []Entry) (string, error) {
	filename := filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", chunkID))
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create chunk file %s: %w", filename, err)
	}
	defer file.Close()

	if err := WriteChunk(file, entries); err != nil {
		return "", fmt.Errorf("failed to write chunk file %s: %w", filename, err)
	}
	return filename, nil
}
