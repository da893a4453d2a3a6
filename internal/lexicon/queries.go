package lexicon

// CommonQueries pre-warms the embedding cache at startup.
var CommonQueries = []string{
	"wedding dress for women",
	"wedding suit for men",
	"casual shirt for men",
	"black shoes for work",
	"formal dress for women",
	"sports shoes for men",
	"summer dress for women",
	"business suit for men",
	"running shoes",
	"evening gown",

	"hochzeitskleid für frauen",
	"hochzeitsanzug für männer",
	"lässiges hemd für männer",
	"schwarze schuhe für die arbeit",
	"formelles kleid für frauen",
	"sportschuhe für männer",
	"sommerkleid für frauen",
	"business anzug für männer",
	"laufschuhe",
	"abendkleid",

	"black dress",
	"white shirt",
	"blue jeans",
	"leather jacket",
	"formal shoes",
	"casual wear",
	"party dress",
	"work outfit",
}
