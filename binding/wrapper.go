package main

import (
	// #include <stdlib.h>
	"C"
	"encoding/json"
	"unsafe"

	"github.com/wakachi-nlp/wakachi/config"
	"github.com/wakachi-nlp/wakachi/morpheme"
	"github.com/wakachi-nlp/wakachi/tokenizer"
)

var tok *tokenizer.Tokenizer

//export CreateAnalyzer
func CreateAnalyzer(configPath *C.char) {
	cfg, err := config.Load(C.GoString(configPath))
	if err != nil {
		return
	}
	t, err := tokenizer.FromConfig(*cfg)
	if err != nil {
		return
	}
	tok = t
}

type morphemeDump struct {
	Surface        string `json:"surface"`
	DictionaryForm string `json:"dictionaryForm"`
	ReadingForm    string `json:"readingForm"`
	POSID          int16  `json:"posId"`
	IsOOV          bool   `json:"isOov"`
}

//export AnalyzeWord
func AnalyzeWord(word *C.char) *C.char {
	if tok == nil {
		return C.CString("[]")
	}
	goWord := C.GoString(word)

	list, err := tok.Tokenize(morpheme.ModeC, goWord)
	if err != nil {
		return C.CString("[]")
	}

	out := make([]morphemeDump, 0, list.Size())
	for i := 0; i < list.Size(); i++ {
		m, err := list.Get(i)
		if err != nil {
			continue
		}
		out = append(out, morphemeDump{
			Surface:        m.Surface(),
			DictionaryForm: m.DictionaryForm(),
			ReadingForm:    m.ReadingForm(),
			POSID:          m.POSID(),
			IsOOV:          m.IsOOV(),
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return C.CString("[]")
	}
	return C.CString(string(data))
}

//export FreeString
func FreeString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

//export ReleaseAnalyzer
func ReleaseAnalyzer() {
	tok = nil
}

func main() {}
