package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/tree"
)

// maxAmbiguous caps how many candidates an ambiguity error lists.
const maxAmbiguous = 5

// resolveID finds the node that input names among nodes of the given
// kinds. input may be a full id or a unique id prefix, so the short ids
// printed by "show --ids" can be typed back.
func resolveID(root *domain.Root, input string, kinds ...domain.Kind) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s id is required", kindList(kinds))
	}

	var prefixed []string
	exact := ""
	tree.Walk(root, func(n domain.Node, _ int) bool {
		if exact != "" {
			return false
		}
		if !kindAllowed(n.Kind(), kinds) {
			return true
		}
		id := n.NodeID()
		if id == input {
			exact = id
			return false
		}
		if strings.HasPrefix(id, input) {
			prefixed = append(prefixed, id)
		}
		return true
	})

	switch {
	case exact != "":
		return exact, nil
	case len(prefixed) == 1:
		return prefixed[0], nil
	case len(prefixed) == 0:
		return "", fmt.Errorf("no %s matches %q", kindList(kinds), input)
	}
	shown := prefixed
	if len(shown) > maxAmbiguous {
		shown = shown[:maxAmbiguous]
	}
	return "", fmt.Errorf("%q is ambiguous (%d matches: %s)", input, len(prefixed), strings.Join(shown, ", "))
}

func kindAllowed(k domain.Kind, kinds []domain.Kind) bool {
	if len(kinds) == 0 {
		return k != domain.KindRoot
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func kindList(kinds []domain.Kind) string {
	if len(kinds) == 0 {
		return "node"
	}
	labels := make([]string, len(kinds))
	for i, k := range kinds {
		labels[i] = k.Label()
	}
	return strings.Join(labels, " or ")
}
