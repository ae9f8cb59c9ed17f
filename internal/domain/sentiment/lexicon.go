package sentiment

// lexicon maps lowercase tokens to polarity contributions.
var lexicon = map[string]float64{
	// positive
	"amazing":     0.6,
	"awesome":     1.0,
	"beautiful":   0.85,
	"best":        1.0,
	"brilliant":   0.9,
	"cool":        0.35,
	"delightful":  1.0,
	"easy":        0.45,
	"enjoy":       0.4,
	"excellent":   1.0,
	"exciting":    0.45,
	"fantastic":   0.4,
	"fast":        0.2,
	"fun":         0.3,
	"good":        0.7,
	"great":       0.8,
	"happy":       0.8,
	"helpful":     0.3,
	"impressive":  1.0,
	"interesting": 0.5,
	"like":        0.3,
	"love":        0.5,
	"nice":        0.6,
	"perfect":     1.0,
	"pleasant":    0.75,
	"smooth":      0.4,
	"thank":       0.25,
	"thanks":      0.25,
	"useful":      0.3,
	"wonderful":   1.0,

	// negative
	"angry":         -0.5,
	"annoying":      -0.6,
	"awful":         -1.0,
	"bad":           -0.7,
	"boring":        -1.0,
	"broken":        -0.4,
	"confusing":     -0.4,
	"disappointing": -0.6,
	"dislike":       -0.4,
	"dreadful":      -1.0,
	"fail":          -0.5,
	"failed":        -0.5,
	"hate":          -0.8,
	"horrible":      -1.0,
	"hurt":          -0.5,
	"poor":          -0.4,
	"sad":           -0.5,
	"slow":          -0.3,
	"terrible":      -1.0,
	"ugly":          -0.7,
	"unhappy":       -0.6,
	"useless":       -0.35,
	"worst":         -1.0,
	"wrong":         -0.5,
}

// negators dampen and flip the polarity of the word that follows.
var negators = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"n't":     {},
	"don't":   {},
	"doesn't": {},
	"isn't":   {},
	"wasn't":  {},
	"won't":   {},
	"can't":   {},
}
