package enrich

import "github.com/samber/lo"

// Reconcile returns the inventory paths the lookup does not list, in
// inventory order. The result is never nil.
func Reconcile(inventory []string, l *Lookup) []string {
	return lo.Filter(inventory, func(p string, _ int) bool {
		return !l.Has(p)
	})
}
