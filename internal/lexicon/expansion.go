package lexicon

// Synonym lists the related terms appended to a query containing Term.
type Synonym struct {
	Term     string
	Synonyms []string
}

// MaxSynonymsPerTerm caps how many synonyms one matched term contributes.
const MaxSynonymsPerTerm = 2

// FashionSynonyms is applied in order; output order follows this table.
var FashionSynonyms = []Synonym{
	// gender
	{"man", []string{"men", "male", "masculine", "gentleman", "männer", "herr"}},
	{"männer", []string{"men", "male", "man", "masculine"}},
	{"woman", []string{"women", "female", "feminine", "lady", "frauen", "dame"}},
	{"frauen", []string{"women", "female", "woman", "lady"}},

	// formal
	{"wedding", []string{"bridal", "ceremony", "formal", "special occasion", "hochzeit", "zeremonie"}},
	{"hochzeit", []string{"wedding", "bridal", "ceremony", "formal"}},
	{"formal", []string{"dress up", "elegant", "sophisticated", "classy", "formell"}},
	{"suit", []string{"formal wear", "business attire", "tailored", "anzug"}},
	{"anzug", []string{"suit", "formal wear", "business attire"}},
	{"dress", []string{"gown", "frock", "outfit", "kleid"}},
	{"kleid", []string{"dress", "gown", "outfit"}},

	// casual
	{"casual", []string{"relaxed", "everyday", "comfortable", "laid-back", "lässig", "bequem"}},
	{"lässig", []string{"casual", "relaxed", "comfortable"}},
	{"jeans", []string{"denim", "pants", "trousers"}},
	{"shirt", []string{"top", "blouse", "tee", "hemd"}},
	{"hemd", []string{"shirt", "top", "blouse"}},

	// footwear
	{"shoes", []string{"footwear", "sneakers", "boots", "loafers", "schuhe"}},
	{"schuhe", []string{"shoes", "footwear", "sneakers", "boots"}},
	{"sneakers", []string{"trainers", "athletic shoes", "running shoes", "sneaker"}},
	{"heels", []string{"high heels", "pumps", "stilettos", "absätze"}},

	// colors
	{"black", []string{"dark", "charcoal", "ebony", "schwarz"}},
	{"schwarz", []string{"black", "dark"}},
	{"white", []string{"cream", "ivory", "off-white", "weiß"}},
	{"weiß", []string{"white", "cream", "ivory"}},
	{"blue", []string{"navy", "azure", "cobalt", "blau"}},
	{"blau", []string{"blue", "navy"}},
	{"red", []string{"crimson", "scarlet", "burgundy", "rot"}},
	{"rot", []string{"red", "crimson"}},

	// occasions
	{"work", []string{"office", "business", "professional", "arbeit", "büro"}},
	{"arbeit", []string{"work", "office", "business", "professional"}},
	{"party", []string{"celebration", "festive", "night out", "club", "feier"}},
	{"feier", []string{"party", "celebration", "festive"}},
	{"beach", []string{"vacation", "resort", "summer", "strand", "urlaub"}},
	{"strand", []string{"beach", "vacation", "summer"}},
	{"gym", []string{"workout", "athletic", "sport", "fitness", "training"}},
}

// StopWords are dropped when building the simplified query variant.
var StopWords = set(
	"for", "a", "an", "the", "i", "want", "need", "looking", "find", "show", "me",
	"für", "ein", "eine", "der", "die", "das", "ich", "will", "brauche", "suche", "zeig", "mir",
)

// FashionNouns are garment words kept for the noun-only query variant.
var FashionNouns = set(
	"dress", "suit", "shirt", "pants", "shoes", "jacket", "coat", "skirt",
	"top", "blouse", "jeans", "shorts", "boots", "sneakers", "heels",
	"accessories", "bag", "watch", "jewelry", "belt", "hat",
	"kleid", "anzug", "hemd", "hose", "schuhe", "jacke", "mantel", "rock",
	"bluse", "stiefel", "sneaker", "absätze",
	"tasche", "uhr", "schmuck", "gürtel", "hut",
)

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, s := range items {
		m[s] = struct{}{}
	}
	return m
}
