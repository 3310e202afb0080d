package tokenizer

import (
	"encoding/json"
	"os"

	"github.com/wakachi-nlp/wakachi/config"
	"github.com/wakachi-nlp/wakachi/dic"
	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/plugin"
	"github.com/wakachi-nlp/wakachi/rewrite"
	"github.com/wakachi-nlp/wakachi/werror"
)

// FromConfig builds a Tokenizer from a decoded config.Config: opens the
// system dictionary and any user dictionaries, parses the character
// definition file if given, and resolves every plugin-settings entry
// through the plugin registry.
func FromConfig(cfg config.Config) (*Tokenizer, error) {
	sysPath := cfg.ResolvePath(cfg.SystemDict)
	if sysPath == "" {
		return nil, werror.Config("tokenizer: config has no systemDict")
	}
	sysDict, err := dic.Open(sysPath, 0)
	if err != nil {
		return nil, err
	}

	lexicons := []*dic.Lexicon{sysDict.Lexicon}
	for i, userPath := range cfg.UserDict {
		userDict, err := dic.Open(cfg.ResolvePath(userPath), i+1)
		if err != nil {
			return nil, err
		}
		lexicons = append(lexicons, userDict.Lexicon)
	}
	lexiconSet := dic.NewLexiconSet(lexicons[0], lexicons[1:]...)

	var charCategory *chardef.CharCategory
	if cfg.CharacterDefinitionFile != "" {
		charCategory, err = loadCharCategory(cfg.ResolvePath(cfg.CharacterDefinitionFile))
		if err != nil {
			return nil, err
		}
	}

	res := plugin.Resources{Grammar: sysDict.Grammar, Lexicon: lexiconSet, CharCategory: charCategory}

	opts := Options{Lexicon: lexiconSet, Grammar: sysDict.Grammar, CharCategory: charCategory}

	for _, p := range cfg.InputTextPlugin {
		tp, err := plugin.BuildTextPlugin(p.Class, p.Settings, res)
		if err != nil {
			return nil, err
		}
		opts.TextPlugins = append(opts.TextPlugins, tp)
	}

	for _, p := range cfg.OovProviderPlugin {
		providerRes := res
		if unkPath := unkDefPath(p.Settings); unkPath != "" {
			entries, err := loadUnkEntries(cfg.ResolvePath(unkPath), sysDict.Grammar)
			if err != nil {
				return nil, err
			}
			providerRes.UnkEntries = entries
		}
		pr, err := plugin.BuildOovProvider(p.Class, p.Settings, providerRes)
		if err != nil {
			return nil, err
		}
		opts.OovProviders = append(opts.OovProviders, pr)
	}

	for _, p := range cfg.PathRewritePlugin {
		if chunker, err := tryBuildTokenChunker(p, res); err != nil {
			return nil, err
		} else if chunker != nil {
			opts.TokenChunker = chunker
			continue
		}
		rp, err := plugin.BuildRewritePlugin(p.Class, p.Settings, res)
		if err != nil {
			return nil, err
		}
		opts.RewritePlugins = append(opts.RewritePlugins, rp)
	}

	for _, p := range cfg.EditConnectionCostPlugin {
		editor, err := plugin.BuildConnectionCostEditor(p.Class, p.Settings, res)
		if err != nil {
			return nil, err
		}
		if err := editor.Edit(sysDict.Grammar); err != nil {
			return nil, err
		}
	}

	return New(opts)
}

// tryBuildTokenChunker resolves p against the token-chunker registry,
// returning (nil, nil) when p's class isn't registered there (the
// pathRewritePlugin array mixes generic rewrite.Plugin entries with the
// one TokenChunkerPlugin entry, distinguished by class name).
func tryBuildTokenChunker(p config.PluginSettings, res plugin.Resources) (*rewrite.TokenChunkerPlugin, error) {
	chunker, err := plugin.BuildTokenChunker(p.Class, p.Settings, res)
	if err != nil {
		return nil, nil
	}
	return chunker, nil
}

func loadCharCategory(path string) (*chardef.CharCategory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, werror.IO(err, "tokenizer: opening character definition file %s", path)
	}
	defer f.Close()
	return chardef.ParseCharDef(f)
}

func loadUnkEntries(path string, grammar *dic.Grammar) ([]chardef.UnkEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, werror.IO(err, "tokenizer: opening unknown-word definition file %s", path)
	}
	defer f.Close()
	return chardef.ParseUnkDef(f, grammar.PosTable())
}

// unkDefPath peeks an OOV provider settings blob for an "unkDef" field,
// without committing to that provider's full settings shape (only
// MeCabOovPlugin-style entries carry one).
func unkDefPath(raw json.RawMessage) string {
	var peek struct {
		UnkDef string `json:"unkDef"`
	}
	_ = json.Unmarshal(raw, &peek)
	return peek.UnkDef
}
