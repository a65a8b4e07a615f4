package css

import (
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
)

// Family is the theme tokenizer registered by this package.
var Family = lexer.Family{Name: FamilyName, Version: "1.0.0"}

// Producers returns the theme producers in priority order. The first producer
// whose CanProduce holds wins. A leading '-' is tried as a number, then CDC,
// then identifier, then delimiter; a leading '.' as a number, then delimiter.
func Producers() []lexer.Producer {
	return []lexer.Producer{
		whitespaceProducer{},
		commentProducer{},
		stringProducer{},
		numberProducer{},
		cdcProducer,
		cdoProducer,
		unicodeRangeProducer{},
		identProducer{},
		hashProducer{},
		atProducer{},
		matchProducer,
		punctuationProducer,
		delimProducer{},
		catchAllProducer{},
	}
}

// Tokenize is a shortcut for tokenizing text with the theme family.
func Tokenize(text string, opts lexer.Options) lexer.Output {
	return lexer.TokenizeString(Producers(), text, opts)
}

func init() {
	lexer.DefaultRegistry.Register(Family, Producers()...)
}
