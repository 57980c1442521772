package tokens

import (
	"fmt"

	MapSet "github.com/deckarep/golang-set/v2"
)

// Well-known equivalence classes.
const (
	Stablecoins = "STABLECOINS"
	EthGroup    = "ETH_GROUP"
	BtcGroup    = "BTC_GROUP"
)

// DefaultGroups is the built-in taxonomy of economically interchangeable
// tokens. A deployment can override it through config (tokens.groups).
func DefaultGroups() map[string][]string {
	return map[string][]string{
		Stablecoins: {"USDC", "USDT", "DAI", "FRAX", "BUSD"},
		EthGroup:    {"ETH", "WETH", "stETH"},
		BtcGroup:    {"WBTC", "renBTC", "sBTC"},
	}
}

// Resolver classifies token identifiers into equivalence classes. It is an
// immutable value: built once per run and passed to the detector
// explicitly. A token outside every group is its own singleton class.
type Resolver struct {
	groups  map[string]MapSet.Set[string]
	classOf map[string]string
}

// NewResolver builds a resolver from a class-name -> member-token table.
// A token listed under two classes is a configuration error.
func NewResolver(groups map[string][]string) (*Resolver, error) {
	r := &Resolver{
		groups:  make(map[string]MapSet.Set[string], len(groups)),
		classOf: make(map[string]string),
	}
	for class, members := range groups {
		set := MapSet.NewSet[string]()
		for _, token := range members {
			if prev, ok := r.classOf[token]; ok && prev != class {
				return nil, fmt.Errorf("token %q belongs to both %q and %q", token, prev, class)
			}
			r.classOf[token] = class
			set.Add(token)
		}
		r.groups[class] = set
	}
	return r, nil
}

// DefaultResolver returns a resolver over the built-in taxonomy.
func DefaultResolver() *Resolver {
	r, err := NewResolver(DefaultGroups())
	if err != nil {
		// The built-in table has no duplicates.
		panic(err)
	}
	return r
}

// Class returns the equivalence class identifier for a token. Tokens not
// present in any group map to themselves.
func (r *Resolver) Class(token string) string {
	if class, ok := r.classOf[token]; ok {
		return class
	}
	return token
}

// Equivalent reports whether two tokens are economically interchangeable.
func (r *Resolver) Equivalent(a, b string) bool {
	return r.Class(a) == r.Class(b)
}

// Members returns the tokens of a class, or an empty set for singletons.
func (r *Resolver) Members(class string) MapSet.Set[string] {
	if set, ok := r.groups[class]; ok {
		return set.Clone()
	}
	return MapSet.NewSet[string]()
}
