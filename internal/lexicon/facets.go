package lexicon

import "github.com/kailas-cloud/stylebot/internal/domain/facet"

// Short English gender terms that are substrings of opposite-gender terms
// ("men" in "women", "male" in "female") match whole words only.

// QueryGender recognizes the audience in a user query. Tags are additive.
var QueryGender = Table[facet.Gender]{
	{Tag: facet.Male, Keywords: join(
		words("man", "men", "mens", "male"),
		substr("guy", "boy", "masculine", "groom", "gentleman"),
		substr("mann", "männer", "männlich", "herr", "herren", "junge", "bräutigam", "männliche"),
	)},
	{Tag: facet.Female, Keywords: join(
		substr("woman", "women", "womens", "female", "girl", "feminine", "bride", "lady", "ladies"),
		substr("frau", "frauen", "weiblich", "dame", "damen", "mädchen", "braut", "weibliche"),
	)},
	{Tag: facet.Unisex, Keywords: substr("unisex", "gender neutral", "geschlechtsneutral")},
}

// QueryCategory recognizes clothing categories in a user query.
var QueryCategory = Table[facet.Category]{
	{Tag: facet.FormalWear, Keywords: join(
		substr("wedding", "formal", "ceremony", "black tie", "tuxedo", "gown", "evening", "suit", "dress"),
		substr("hochzeit", "formell", "zeremonie", "smoking", "anzug", "kleid", "abend", "festlich", "elegant"),
	)},
	{Tag: facet.CasualWear, Keywords: join(
		substr("casual", "everyday", "street", "relaxed", "comfortable", "jeans", "shirt", "t-shirt"),
		substr("lässig", "alltäglich", "bequem", "entspannt", "hemd"),
	)},
	{Tag: facet.Activewear, Keywords: join(
		substr("gym", "workout", "sport", "athletic", "running", "yoga", "fitness", "training"),
		substr("laufen", "athletisch", "sportlich"),
	)},
	{Tag: facet.Outerwear, Keywords: join(
		substr("jacket", "coat", "blazer", "hoodie", "cardigan", "sweater"),
		substr("jacke", "mantel", "strickjacke", "pullover"),
	)},
	{Tag: facet.Footwear, Keywords: join(
		substr("shoes", "boots", "sneakers", "heels", "sandals", "flats", "loafers"),
		substr("schuhe", "stiefel", "sneaker", "absätze", "sandalen", "flache", "slipper"),
	)},
	{Tag: facet.Accessories, Keywords: join(
		substr("bag", "watch", "jewelry", "belt", "hat", "scarf", "sunglasses"),
		substr("tasche", "uhr", "schmuck", "gürtel", "hut", "schal", "sonnenbrille"),
	)},
}

// QueryOccasion recognizes occasions in a user query.
var QueryOccasion = Table[facet.Occasion]{
	{Tag: facet.Wedding, Keywords: join(
		substr("wedding", "ceremony", "reception", "bridal", "marriage"),
		substr("hochzeit", "zeremonie", "empfang", "braut", "heirat", "trauung"),
	)},
	{Tag: facet.Work, Keywords: join(
		substr("office", "business", "professional", "work", "corporate"),
		substr("büro", "geschäft", "professionell", "arbeit", "beruflich"),
	)},
	{Tag: facet.Party, Keywords: join(
		substr("party", "celebration", "night out", "club", "festive"),
		substr("feier", "ausgehen", "festlich"),
	)},
	{Tag: facet.Beach, Keywords: join(
		substr("beach", "vacation", "summer", "resort", "holiday"),
		substr("strand", "urlaub", "sommer", "ferien"),
	)},
}

// QueryColor recognizes base colors in a user query.
var QueryColor = Table[facet.Color]{
	{Tag: facet.Black, Keywords: substr("black", "schwarz")},
	{Tag: facet.White, Keywords: substr("white", "cream", "ivory", "weiß", "creme")},
	{Tag: facet.Blue, Keywords: substr("blue", "navy", "blau", "marine")},
	{Tag: facet.Red, Keywords: substr("red", "crimson", "rot")},
	{Tag: facet.Green, Keywords: substr("green", "grün")},
	{Tag: facet.Yellow, Keywords: substr("yellow", "gelb")},
	{Tag: facet.Brown, Keywords: substr("brown", "braun")},
	{Tag: facet.Gray, Keywords: substr("gray", "grey", "grau")},
	{Tag: facet.Pink, Keywords: substr("pink", "rosa")},
	{Tag: facet.Purple, Keywords: substr("purple", "violet", "lila", "violett")},
}

// ContentGender holds the narrower English-only terms used to label product chunks.
var ContentGender = Table[facet.Gender]{
	{Tag: facet.Male, Keywords: join(
		words("men", "man", "male", "mens"),
		substr("masculine", "gentleman"),
	)},
	{Tag: facet.Female, Keywords: substr("women", "woman", "female", "feminine", "lady", "womens", "ladies")},
}

// ContentCategory labels product chunks. Order is priority: the first match wins.
var ContentCategory = Table[facet.Category]{
	{Tag: facet.FormalWear, Keywords: substr("formal", "wedding", "ceremony", "suit", "dress", "gown")},
	{Tag: facet.CasualWear, Keywords: substr("casual", "everyday", "jeans", "t-shirt")},
	{Tag: facet.Activewear, Keywords: substr("sport", "athletic", "gym", "running")},
	{Tag: facet.Outerwear, Keywords: substr("jacket", "coat", "blazer", "hoodie")},
	{Tag: facet.Footwear, Keywords: substr("shoes", "boots", "sneakers", "heels")},
}
