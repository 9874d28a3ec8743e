package importer

import (
	_ "embed"
	"fmt"

	"github.com/alexanderramin/tododoc/internal/domain"
)

//go:embed example.json
var exampleJSON []byte

// ExampleJSON returns the raw sample document used by `init --example`.
func ExampleJSON() []byte {
	out := make([]byte, len(exampleJSON))
	copy(out, exampleJSON)
	return out
}

// Example returns a freshly decoded copy of the sample document.
func Example() *domain.Root {
	root, err := Parse(exampleJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded example document: %v", err))
	}
	return root
}
