// grammar/lexicon_en.go
package grammar

import "golang.org/x/text/language"

// English spells amounts with two-way agreement and no gender. Magnitude
// nouns do not inflect after a numeral ("two thousand").
var English = &Language{
	Tag:       TagENG,
	Name:      "English",
	Base:      language.English,
	Agreement: TwoWay,
	Lexicon: Lexicon{
		Zero: "zero",
		Units: [10]string{
			"", "one", "two", "three", "four",
			"five", "six", "seven", "eight", "nine",
		},
		Teens: [10]string{
			"ten", "eleven", "twelve", "thirteen", "fourteen",
			"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
		},
		Tens: [10]string{
			"", "", "twenty", "thirty", "forty",
			"fifty", "sixty", "seventy", "eighty", "ninety",
		},
		Hundreds: [10]string{
			"", "one hundred", "two hundred", "three hundred", "four hundred",
			"five hundred", "six hundred", "seven hundred", "eight hundred", "nine hundred",
		},
	},
	Thousand: Forms{One: "thousand", Few: "thousand", Many: "thousand", Gender: Masculine},
	Million:  Forms{One: "million", Few: "million", Many: "million", Gender: Masculine},
	Billion:  Forms{One: "billion", Few: "billion", Many: "billion", Gender: Masculine},
}
