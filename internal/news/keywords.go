package news

// alignmentKeywords are the phrases that mark a press mention as
// relevant to workforce and economic-mobility funding. Scanned
// case-insensitively against quotes, titles and snippets.
var alignmentKeywords = []string{
	"workforce development",
	"workforce",
	"job training",
	"career pathways",
	"upward mobility",
	"economic mobility",
	"upskilling",
	"reskilling",
	"skills training",
	"adult education",
	"artificial intelligence",
	"AI training",
	"AI workforce",
	"digital skills",
	"tech training",
	"coding bootcamp",
	"American Dream",
	"income mobility",
	"economic opportunity",
	"merit america",
}

// searchTerms widen the RSS query beyond the foundation name so that
// only coverage touching these topics comes back.
var searchTerms = []string{
	"workforce",
	"education",
	"AI",
	"economic mobility",
	"skills training",
}
