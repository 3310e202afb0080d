package dic

import (
	"strings"

	"github.com/wakachi-nlp/wakachi/werror"
)

// Magic version identifiers distinguishing system and user dictionary
// formats and revisions.
const (
	MagicSystemV1 uint64 = 0x7366D3F18BD111E7
	MagicSystemV2 uint64 = 0xCE9F011A92394434
	MagicUserV1   uint64 = 0xA50F31188BD211E7
	MagicUserV2   uint64 = 0x9FDEB5A90168D868
	MagicUserV3   uint64 = 0xCA9811756FF64FB0
)

const (
	headerDescriptionSize = 256
	// magic(8) + createTime(8) + description(256) = 272 bytes.
	HeaderSize = 8 + 8 + headerDescriptionSize
)

// Header is the fixed 272-byte prefix of every dictionary file.
type Header struct {
	Version      uint64
	CreateTime   uint64
	Description  string
	HasSynonyms  bool // only v2 system / v3 user
	HasGrammar   bool // v2/v3 user and all system versions
	IsUser       bool
}

func classifyMagic(version uint64) (isUser, hasSynonyms, hasGrammar bool, ok bool) {
	switch version {
	case MagicSystemV1:
		return false, false, true, true
	case MagicSystemV2:
		return false, true, true, true
	case MagicUserV1:
		return true, false, false, true
	case MagicUserV2:
		return true, false, true, true
	case MagicUserV3:
		return true, true, true, true
	default:
		return false, false, false, false
	}
}

// parseHeader reads the 272-byte header from the start of b.
func parseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, werror.DictionaryFormat("dictionary file too small for header: %d bytes", len(b))
	}
	c := newCursor(b)
	version, err := c.u64()
	if err != nil {
		return Header{}, err
	}
	createTime, err := c.u64()
	if err != nil {
		return Header{}, err
	}
	descBytes, err := c.bytesN(headerDescriptionSize)
	if err != nil {
		return Header{}, err
	}
	isUser, hasSynonyms, hasGrammar, ok := classifyMagic(version)
	if !ok {
		return Header{}, werror.DictionaryFormat("unrecognized dictionary magic %#x", version)
	}
	desc := string(descBytes)
	if i := strings.IndexByte(desc, 0); i >= 0 {
		desc = desc[:i]
	}
	return Header{
		Version:     version,
		CreateTime:  createTime,
		Description: desc,
		HasSynonyms: hasSynonyms,
		HasGrammar:  hasGrammar,
		IsUser:      isUser,
	}, nil
}
