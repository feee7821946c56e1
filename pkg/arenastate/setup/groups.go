package setup

import (
	"github.com/NethermindEth/arenastate/pkg/arenastate/envfile"
)

// Group is a set of prefixed variables used together by one integration.
// Required names must all be present for the integration to be usable.
type Group struct {
	Prefix   string
	Required []string
	Optional []string
}

type GroupValues struct {
	Values  map[string]string
	Missing []string
}

func (v GroupValues) MissingAny() bool {
	return len(v.Missing) != 0
}

var (
	OpenAiGroup = Group{
		Prefix:   "ARENASTATE_OPENAI_",
		Required: []string{"API_KEY", "IMAGES_URL"},
		Optional: []string{"IMAGE_PROMPT"},
	}
	NftStorageGroup = Group{
		Prefix:   "ARENASTATE_NFTSTORAGE_",
		Required: []string{"URL", "API_KEY"},
		Optional: []string{"GAME_ICON_FILENAME"},
	}
	MaptoolGroup = Group{
		Prefix:   "ARENASTATE_MAPTOOL_",
		Required: []string{"URL", "IMAGE", "IMAGE_DIGEST"},
	}
)

func (g Group) WithPrefix(prefix string) Group {
	g.Prefix = prefix
	return g
}

func (g Group) All() []string {
	all := make([]string, 0, len(g.Required)+len(g.Optional))
	all = append(all, g.Required...)
	return append(all, g.Optional...)
}

// Have reports whether every required name is set to a usable value.
func (g Group) Have(src envfile.Source) bool {
	return len(g.Unusable(src)) == 0
}

// Unusable lists the required names that are unset, empty, or still a
// placeholder waiting for substitution.
func (g Group) Unusable(src envfile.Source) []string {
	var out []string
	for _, name := range g.Required {
		v, ok := src.Lookup(g.Prefix + name)
		if !ok || v == "" {
			out = append(out, name)
			continue
		}
		if _, placeholder := envfile.IsPlaceholder(v); placeholder {
			out = append(out, name)
		}
	}
	return out
}

// Get collects the values that are set, even when required ones are missing.
// Values are keyed by the name without the prefix.
func (g Group) Get(src envfile.Source) GroupValues {
	out := GroupValues{Values: make(map[string]string)}
	for _, name := range g.All() {
		v, ok := src.Lookup(g.Prefix + name)
		if !ok {
			out.Missing = append(out.Missing, name)
			continue
		}
		out.Values[name] = v
	}
	return out
}

type OpenAiOptions struct {
	ApiKey      string
	ImagesUrl   string
	ImagePrompt string
	Configured  bool
}

type NftStorageOptions struct {
	ApiKey           string
	Url              string
	GameIconFilename string
	Configured       bool
}

type MaptoolOptions struct {
	Url         string
	Image       string
	ImageDigest string
	Configured  bool
}

func NewOpenAiOptions(src envfile.Source, g Group) OpenAiOptions {
	v := g.Get(src).Values
	return OpenAiOptions{
		ApiKey:      v["API_KEY"],
		ImagesUrl:   v["IMAGES_URL"],
		ImagePrompt: v["IMAGE_PROMPT"],
		Configured:  g.Have(src),
	}
}

func NewNftStorageOptions(src envfile.Source, g Group) NftStorageOptions {
	v := g.Get(src).Values
	return NftStorageOptions{
		ApiKey:           v["API_KEY"],
		Url:              v["URL"],
		GameIconFilename: v["GAME_ICON_FILENAME"],
		Configured:       g.Have(src),
	}
}

func NewMaptoolOptions(src envfile.Source, g Group) MaptoolOptions {
	v := g.Get(src).Values
	return MaptoolOptions{
		Url:         v["URL"],
		Image:       v["IMAGE"],
		ImageDigest: v["IMAGE_DIGEST"],
		Configured:  g.Have(src),
	}
}
