// grammar/lexicon_uk.go
package grammar

import "golang.org/x/text/language"

// Ukrainian spells amounts with three-way agreement and gendered one/two.
var Ukrainian = &Language{
	Tag:             TagUA,
	Name:            "українська",
	Base:            language.Ukrainian,
	Agreement:       ThreeWay,
	GenderSensitive: true,
	Lexicon: Lexicon{
		Zero: "нуль",
		Units: [10]string{
			"", "один", "два", "три", "чотири",
			"п'ять", "шість", "сім", "вісім", "дев'ять",
		},
		Feminine: [10]string{
			1: "одна",
			2: "дві",
		},
		Teens: [10]string{
			"десять", "одинадцять", "дванадцять", "тринадцять", "чотирнадцять",
			"п'ятнадцять", "шістнадцять", "сімнадцять", "вісімнадцять", "дев'ятнадцять",
		},
		Tens: [10]string{
			"", "", "двадцять", "тридцять", "сорок",
			"п'ятдесят", "шістдесят", "сімдесят", "вісімдесят", "дев'яносто",
		},
		Hundreds: [10]string{
			"", "сто", "двісті", "триста", "чотириста",
			"п'ятсот", "шістсот", "сімсот", "вісімсот", "дев'ятсот",
		},
	},
	Thousand: Forms{One: "тисяча", Few: "тисячі", Many: "тисяч", Gender: Feminine},
	Million:  Forms{One: "мільйон", Few: "мільйони", Many: "мільйонів", Gender: Masculine},
	Billion:  Forms{One: "мільярд", Few: "мільярди", Many: "мільярдів", Gender: Masculine},
}
