package dic

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/wakachi-nlp/wakachi/logging"
	"github.com/wakachi-nlp/wakachi/werror"
)

// Dictionary is one mmap'd binary dictionary file: its header, the grammar
// block (system dictionaries and v2/v3 user dictionaries), and a lexicon.
// Open maps the file instead of reading it into the Go heap. The
// word-parameter table and the word-info records stay views over the
// mapped image (the word-parameter table until SetCost clones it); the
// trie arrays, word-info offsets, POS table and connection matrix are
// decoded into Go slices when the file is opened.
type Dictionary struct {
	Header  Header
	Grammar *Grammar // nil for v1 user dictionaries, which carry no grammar block
	Lexicon *Lexicon

	file *os.File
	mm   mmap.MMap
}

// Open mmaps path and parses it as a dictionary tagged with dicID (the
// dictionary id baked into every wordid.ID this dictionary's lexicon
// returns; system dictionaries conventionally use 0, user dictionaries use
// 1, 2, ... in load order).
func Open(path string, dicID int) (*Dictionary, error) {
	logging.Default().Debug("opening dictionary", logging.String("path", path), logging.Int("dicID", dicID))

	file, err := os.Open(path)
	if err != nil {
		return nil, werror.IO(err, "dic: opening %s", path)
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, werror.IO(err, "dic: mmap %s", path)
	}

	d, err := parse(m, dicID)
	if err != nil {
		m.Unmap()
		file.Close()
		return nil, fmt.Errorf("dic: parsing %s: %w", path, err)
	}
	d.file = file
	d.mm = m
	return d, nil
}

func parse(data []byte, dicID int) (*Dictionary, error) {
	header, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	c := newCursor(data[HeaderSize:])

	var grammar *Grammar
	if header.HasGrammar {
		grammar, err = parseGrammar(c)
		if err != nil {
			return nil, err
		}
	}

	tr, err := parseTrie(c)
	if err != nil {
		return nil, err
	}

	params, err := parseWordParamTable(c)
	if err != nil {
		return nil, err
	}

	offsets, err := parseWordInfoOffsets(c)
	if err != nil {
		return nil, err
	}
	records, err := c.bytesN(c.remaining())
	if err != nil {
		return nil, err
	}
	wordInfos := newWordInfoTable(offsets, records, header.HasSynonyms, dicID)

	lex := &Lexicon{dicID: dicID, trie: tr, params: params, wordInfos: wordInfos}

	return &Dictionary{Header: header, Grammar: grammar, Lexicon: lex}, nil
}

// Close unmaps the dictionary file and closes its descriptor. After Close,
// every value derived from this Dictionary's tables that has not been
// promoted to an owned copy (via a Set call) becomes invalid to read.
func (d *Dictionary) Close() error {
	if d.mm != nil {
		if err := d.mm.Unmap(); err != nil {
			return werror.IO(err, "dic: unmap")
		}
	}
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
