// Package plugin is a fixed class-name registry: each of the three plugin
// kinds (input text, OOV provider, path rewrite) plus connection-cost
// editing is a small capability interface, and concrete implementations
// are looked up by a canonical class-name string rather than constructed
// directly by the caller. Historical com.worksap.nlp.sudachi.* names are
// kept as aliases so a config file written against the reference
// implementation's class names still resolves here.
package plugin

import (
	"encoding/json"
	"regexp"

	"github.com/wakachi-nlp/wakachi/dic"
	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/input"
	"github.com/wakachi-nlp/wakachi/oov"
	"github.com/wakachi-nlp/wakachi/rewrite"
	"github.com/wakachi-nlp/wakachi/werror"
)

// Resources bundles everything a plugin constructor might need beyond its
// own JSON settings; plugins that don't need a resource simply ignore it.
type Resources struct {
	Grammar      *dic.Grammar
	Lexicon      *dic.LexiconSet
	CharCategory *chardef.CharCategory
	UnkEntries   []chardef.UnkEntry
}

// ConnectionCostEditor edits a Grammar's connection matrix in place, e.g.
// forbidding specific bigrams outright.
type ConnectionCostEditor interface {
	Edit(grammar *dic.Grammar) error
}

type (
	textPluginCtor     func(raw json.RawMessage, res Resources) (input.TextPlugin, error)
	oovProviderCtor    func(raw json.RawMessage, res Resources) (oov.Provider, error)
	rewritePluginCtor  func(raw json.RawMessage, res Resources) (rewrite.Plugin, error)
	tokenChunkerCtor   func(raw json.RawMessage, res Resources) (*rewrite.TokenChunkerPlugin, error)
	connectionEditCtor func(raw json.RawMessage, res Resources) (ConnectionCostEditor, error)
)

// names lists the canonical name plus the historical
// com.worksap.nlp.sudachi.<ClassName> alias every plugin kind is
// registered under.
func names(canonical string) []string {
	return []string{canonical, "com.worksap.nlp.sudachi." + canonical}
}

var textPlugins = map[string]textPluginCtor{}
var oovProviders = map[string]oovProviderCtor{}
var rewritePlugins = map[string]rewritePluginCtor{}
var tokenChunkers = map[string]tokenChunkerCtor{}
var connectionEditors = map[string]connectionEditCtor{}

func registerTextPlugin(name string, ctor textPluginCtor) {
	for _, n := range names(name) {
		textPlugins[n] = ctor
	}
}

func registerOovProvider(name string, ctor oovProviderCtor) {
	for _, n := range names(name) {
		oovProviders[n] = ctor
	}
}

func registerRewritePlugin(name string, ctor rewritePluginCtor) {
	for _, n := range names(name) {
		rewritePlugins[n] = ctor
	}
}

func registerTokenChunker(name string, ctor tokenChunkerCtor) {
	for _, n := range names(name) {
		tokenChunkers[n] = ctor
	}
}

func registerConnectionEditor(name string, ctor connectionEditCtor) {
	for _, n := range names(name) {
		connectionEditors[n] = ctor
	}
}

func init() {
	registerTextPlugin("DefaultInputTextPlugin", newDefaultInputTextPlugin)
	registerTextPlugin("ProlongedSoundMarkInputTextPlugin", newProlongedSoundMarkPlugin)

	registerOovProvider("MeCabOovPlugin", newMeCabOovProvider)
	registerOovProvider("SimpleOovPlugin", newSimpleOovProvider)
	registerOovProvider("RegexOovPlugin", newRegexOovProvider)

	registerRewritePlugin("JoinNumericPlugin", newJoinNumericPlugin)
	registerRewritePlugin("JoinKatakanaOovPlugin", newJoinKatakanaOovPlugin)

	registerTokenChunker("TokenChunkerPlugin", newTokenChunkerPlugin)

	registerConnectionEditor("InhibitConnectionPlugin", newInhibitConnectionPlugin)
}

// BuildTextPlugin resolves class against the text-plugin registry.
func BuildTextPlugin(class string, raw json.RawMessage, res Resources) (input.TextPlugin, error) {
	ctor, ok := textPlugins[class]
	if !ok {
		return nil, werror.Config("plugin: unknown input text plugin class %q", class)
	}
	return ctor(raw, res)
}

// BuildOovProvider resolves class against the OOV-provider registry.
func BuildOovProvider(class string, raw json.RawMessage, res Resources) (oov.Provider, error) {
	ctor, ok := oovProviders[class]
	if !ok {
		return nil, werror.Config("plugin: unknown OOV provider class %q", class)
	}
	return ctor(raw, res)
}

// BuildRewritePlugin resolves class against the path-rewrite registry.
func BuildRewritePlugin(class string, raw json.RawMessage, res Resources) (rewrite.Plugin, error) {
	ctor, ok := rewritePlugins[class]
	if !ok {
		return nil, werror.Config("plugin: unknown path rewrite plugin class %q", class)
	}
	return ctor(raw, res)
}

// BuildTokenChunker resolves class against the token-chunker registry.
// TokenChunkerPlugin is registered separately from the generic
// path-rewrite plugins since its RewriteWithPos entry point needs a POS lookup
// the rewrite.Plugin interface doesn't carry (see rewrite.TokenChunkerPlugin).
func BuildTokenChunker(class string, raw json.RawMessage, res Resources) (*rewrite.TokenChunkerPlugin, error) {
	ctor, ok := tokenChunkers[class]
	if !ok {
		return nil, werror.Config("plugin: unknown token chunker class %q", class)
	}
	return ctor(raw, res)
}

// BuildConnectionCostEditor resolves class against the connection-cost
// editor registry.
func BuildConnectionCostEditor(class string, raw json.RawMessage, res Resources) (ConnectionCostEditor, error) {
	ctor, ok := connectionEditors[class]
	if !ok {
		return nil, werror.Config("plugin: unknown connection cost editor class %q", class)
	}
	return ctor(raw, res)
}

// --- input text plugins ---

type defaultInputTextPluginSettings struct {
	Replace         map[string]string `json:"replace"`
	IgnoreNormalize string            `json:"ignoreNormalize"`
}

func newDefaultInputTextPlugin(raw json.RawMessage, _ Resources) (input.TextPlugin, error) {
	var s defaultInputTextPluginSettings
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, werror.Config("plugin: DefaultInputTextPlugin settings: %v", err)
		}
	}
	exceptions := make(map[rune]bool, len(s.IgnoreNormalize))
	for _, r := range s.IgnoreNormalize {
		exceptions[r] = true
	}
	return &input.DefaultInputTextPlugin{UserReplacements: s.Replace, Exceptions: exceptions}, nil
}

func newProlongedSoundMarkPlugin(json.RawMessage, Resources) (input.TextPlugin, error) {
	return input.ProlongedSoundMarkInputTextPlugin{}, nil
}

// --- OOV providers ---

type meCabOovSettings struct {
	// The character definition and unk.def files are parsed by
	// tokenizer.FromConfig into *chardef.CharCategory/[]chardef.UnkEntry
	// and handed in via Resources; this plugin has nothing left to decode from JSON beyond
	// what Resources already carries.
}

func newMeCabOovProvider(raw json.RawMessage, res Resources) (oov.Provider, error) {
	var s meCabOovSettings
	_ = json.Unmarshal(raw, &s)
	if res.CharCategory == nil {
		return nil, werror.Config("plugin: MeCabOovPlugin requires a parsed character category table")
	}
	return oov.NewMeCabProvider(res.CharCategory, res.UnkEntries), nil
}

type simpleOovSettings struct {
	LeftID  int16 `json:"leftId"`
	RightID int16 `json:"rightId"`
	Cost    int16 `json:"cost"`
	PosID   int16 `json:"posId"`
}

func newSimpleOovProvider(raw json.RawMessage, _ Resources) (oov.Provider, error) {
	var s simpleOovSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, werror.Config("plugin: SimpleOovPlugin settings: %v", err)
	}
	return &oov.SimpleProvider{LeftID: s.LeftID, RightID: s.RightID, Cost: s.Cost, PosID: s.PosID}, nil
}

type regexOovSettings struct {
	Pattern string `json:"pattern"`
	LeftID  int16  `json:"leftId"`
	RightID int16  `json:"rightId"`
	Cost    int16  `json:"cost"`
	PosID   int16  `json:"posId"`
	Window  int    `json:"window"`
	Strict  bool   `json:"strict"`
}

func newRegexOovProvider(raw json.RawMessage, _ Resources) (oov.Provider, error) {
	var s regexOovSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, werror.Config("plugin: RegexOovPlugin settings: %v", err)
	}
	re, err := regexp.Compile(s.Pattern)
	if err != nil {
		return nil, werror.Config("plugin: RegexOovPlugin pattern %q: %v", s.Pattern, err)
	}
	return &oov.RegexProvider{
		Pattern: re, LeftID: s.LeftID, RightID: s.RightID, Cost: s.Cost, PosID: s.PosID,
		Window: s.Window, Strict: s.Strict,
	}, nil
}

// --- path rewrite plugins ---

type joinNumericSettings struct {
	EnableNormalize bool `json:"enableNormalize"`
}

func newJoinNumericPlugin(raw json.RawMessage, _ Resources) (rewrite.Plugin, error) {
	var s joinNumericSettings
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, werror.Config("plugin: JoinNumericPlugin settings: %v", err)
		}
	}
	return &rewrite.JoinNumericPlugin{EnableNormalize: s.EnableNormalize}, nil
}

type joinKatakanaSettings struct {
	MinLength int `json:"minLength"`
}

func newJoinKatakanaOovPlugin(raw json.RawMessage, _ Resources) (rewrite.Plugin, error) {
	var s joinKatakanaSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, werror.Config("plugin: JoinKatakanaOovPlugin settings: %v", err)
	}
	return &rewrite.JoinKatakanaOovPlugin{MinLength: s.MinLength}, nil
}

type tokenChunkerSettings struct {
	Category             string   `json:"category"`
	ExcludeSubcategories []string `json:"excludeSubcategories"`
}

func newTokenChunkerPlugin(raw json.RawMessage, _ Resources) (*rewrite.TokenChunkerPlugin, error) {
	var s tokenChunkerSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, werror.Config("plugin: TokenChunkerPlugin settings: %v", err)
	}
	exclude := make(map[string]bool, len(s.ExcludeSubcategories))
	for _, sub := range s.ExcludeSubcategories {
		exclude[sub] = true
	}
	return &rewrite.TokenChunkerPlugin{Category: s.Category, ExcludeSubcategories: exclude}, nil
}

// --- connection cost editors ---

type inhibitConnectionSettings struct {
	Pairs [][2]int `json:"pairs"`
}

// inhibitConnectionEditor sets a fixed list of (left, right) cells to
// dic.InhibitedConnection, via Grammar's own copy-on-write SetConnectCost.
type inhibitConnectionEditor struct {
	pairs [][2]int
}

func (e *inhibitConnectionEditor) Edit(grammar *dic.Grammar) error {
	for _, p := range e.pairs {
		if err := grammar.SetConnectCost(p[0], p[1], dic.InhibitedConnection); err != nil {
			return err
		}
	}
	return nil
}

func newInhibitConnectionPlugin(raw json.RawMessage, _ Resources) (ConnectionCostEditor, error) {
	var s inhibitConnectionSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, werror.Config("plugin: InhibitConnectionPlugin settings: %v", err)
	}
	return &inhibitConnectionEditor{pairs: s.Pairs}, nil
}
