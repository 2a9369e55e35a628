package pex_test

import (
	"fmt"

	"github.com/pexkit/pex/langdef"
)

func Example() {
	input := "foo=1\nbar=42\n"
	grammar := `
!tree pair;
!flat key value;

config = {pair, '\n'};
pair   = key, '=', value;
key    = ('a'..'z')+;
value  = ('0'..'9')+;
`
	configGrammar, e := langdef.ParseString("example grammar", grammar)
	if e != nil {
		fmt.Println(e)
		return
	}

	pc := configGrammar.NewContext(input)
	if !pc.Parse(configGrammar.Root()) || !pc.Ended() {
		fmt.Println("parsing failed")
		return
	}

	for _, pair := range pc.Matches() {
		kv := pair.Children()
		fmt.Printf("%s = %s\n", string(kv[0].Content()), string(kv[1].Content()))
	}

	// Output:
	// foo = 1
	// bar = 42
}
