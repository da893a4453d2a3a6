package lexicon

// GermanToEnglish is the fixed word-level translation lexicon.
// Keys are lower-case single words; values may contain spaces.
var GermanToEnglish = map[string]string{
	// gender
	"mann": "man", "männer": "men", "herr": "man", "herren": "men",
	"frau": "woman", "frauen": "women", "dame": "lady", "damen": "ladies",

	// garments
	"kleid": "dress", "anzug": "suit", "hemd": "shirt", "hose": "pants",
	"jacke": "jacket", "mantel": "coat", "schuhe": "shoes", "stiefel": "boots",
	"pullover": "sweater", "jeans": "jeans", "rock": "skirt",

	// occasions
	"hochzeit": "wedding", "arbeit": "work", "büro": "office",
	"party": "party", "feier": "celebration", "strand": "beach",
	"urlaub": "vacation", "sport": "sport",

	// colors
	"schwarz": "black", "weiß": "white", "blau": "blue", "rot": "red",
	"grün": "green", "gelb": "yellow", "braun": "brown", "grau": "gray",

	// adjectives
	"schön": "beautiful", "elegant": "elegant", "casual": "casual",
	"formell": "formal", "sportlich": "sporty", "bequem": "comfortable",

	// function words
	"für": "for", "mit": "with", "und": "and", "oder": "or",
	"ich": "i", "suche": "looking for", "brauche": "need",
}
